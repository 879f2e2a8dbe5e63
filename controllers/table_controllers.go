package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-manager/services"
	"restaurant-manager/utils"
)

type TableController struct {
	svc *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{svc: services.NewTableService(db)}
}

// CreateTable -> add a new table to the floor plan.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number   string `json:"number" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
		Location string `json:"location"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.svc.Create(req.Number, req.Capacity, req.Location)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> all tables; ?available=true narrows to free ones.
func (tc *TableController) GetAllTables(c *gin.Context) {
	var err error
	var tables interface{}
	if c.Query("available") == "true" {
		tables, err = tc.svc.ListAvailable()
	} else {
		tables, err = tc.svc.List()
	}
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := parseID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.svc.Get(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	id, err := parseID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Number   string `json:"number" binding:"required"`
		Capacity int    `json:"capacity" binding:"required"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.svc.Update(id, req.Number, req.Capacity, req.Location)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// AssignTable -> seat an order at the table; 409 if already occupied.
func (tc *TableController) AssignTable(c *gin.Context) {
	id, err := parseID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		OrderID uint `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.svc.Assign(id, req.OrderID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table assigned", table)
}

// ReleaseTable -> free the table without touching the order.
func (tc *TableController) ReleaseTable(c *gin.Context) {
	id, err := parseID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.svc.Release(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table released", table)
}

// DeleteTable -> remove a table; refused while occupied.
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := parseID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.svc.Delete(id); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": id})
}
