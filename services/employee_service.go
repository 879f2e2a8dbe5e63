package services

import (
	"strings"

	"gorm.io/gorm"

	"restaurant-manager/models"
	"restaurant-manager/repositories"
	"restaurant-manager/utils"
)

type EmployeeService struct {
	employees *repositories.EmployeeRepository
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{employees: repositories.NewEmployeeRepository(db)}
}

func (s *EmployeeService) Create(name string, contractHours int, post string) (*models.Employee, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if contractHours < 0 {
		return nil, &models.ValidationError{Field: "contract_hours", Reason: "must not be negative"}
	}

	employee := &models.Employee{
		Name:          strings.TrimSpace(name),
		ContractHours: contractHours,
		Post:          post,
	}
	if err := s.employees.Create(employee); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Employee %q hired as %s", employee.Name, employee.Post)
	return employee, nil
}

func (s *EmployeeService) Update(id uint, name string, contractHours int, post string) (*models.Employee, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if contractHours < 0 {
		return nil, &models.ValidationError{Field: "contract_hours", Reason: "must not be negative"}
	}

	employee, err := s.employees.FindByID(id)
	if err != nil {
		return nil, err
	}

	employee.Name = strings.TrimSpace(name)
	employee.ContractHours = contractHours
	employee.Post = post
	if err := s.employees.Save(employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// AddWorkedHours increments the hours an employee has worked. Worked hours
// only ever grow; corrections go through Update on the contract side.
func (s *EmployeeService) AddWorkedHours(id uint, hours int) (*models.Employee, error) {
	if hours < 1 {
		return nil, &models.ValidationError{Field: "hours", Reason: "must be at least 1"}
	}

	employee, err := s.employees.FindByID(id)
	if err != nil {
		return nil, err
	}

	employee.WorkedHours += hours
	if err := s.employees.Save(employee); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Employee %d worked %d more hours (%d total)", id, hours, employee.WorkedHours)
	return employee, nil
}

func (s *EmployeeService) Get(id uint) (*models.Employee, error) {
	return s.employees.FindByID(id)
}

func (s *EmployeeService) List() ([]models.Employee, error) {
	return s.employees.FindAll()
}

func (s *EmployeeService) Delete(id uint) error {
	if _, err := s.employees.FindByID(id); err != nil {
		return err
	}
	if err := s.employees.Delete(id); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Employee %d deleted", id)
	return nil
}
