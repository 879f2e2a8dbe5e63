package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-manager/services"
	"restaurant-manager/utils"
)

type EmployeeController struct {
	svc *services.EmployeeService
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{svc: services.NewEmployeeService(db)}
}

type employeeRequest struct {
	Name          string `json:"name"`
	ContractHours int    `json:"contract_hours"`
	Post          string `json:"post"`
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.svc.Create(req.Name, req.ContractHours, req.Post)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Employee created", employee)
}

func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	employees, err := ec.svc.List()
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	id, err := parseID(c, "employee_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.svc.Get(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee detail", employee)
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, err := parseID(c, "employee_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.svc.Update(id, req.Name, req.ContractHours, req.Post)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee updated", employee)
}

// AddWorkedHours -> log extra hours for an employee; hours only grow.
func (ec *EmployeeController) AddWorkedHours(c *gin.Context) {
	id, err := parseID(c, "employee_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Hours int `json:"hours" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	employee, err := ec.svc.AddWorkedHours(id, req.Hours)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Worked hours updated", employee)
}

func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, err := parseID(c, "employee_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ec.svc.Delete(id); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee deleted", gin.H{"id": id})
}
