package repositories

import (
	"gorm.io/gorm"

	"restaurant-manager/models"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(employee *models.Employee) error {
	if err := r.db.Create(employee).Error; err != nil {
		return &models.PersistenceError{Op: "create employee", Err: err}
	}
	return nil
}

func (r *EmployeeRepository) Save(employee *models.Employee) error {
	if err := r.db.Save(employee).Error; err != nil {
		return &models.PersistenceError{Op: "save employee", Err: err}
	}
	return nil
}

func (r *EmployeeRepository) FindByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepository) FindAll() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Order("name").Find(&employees).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list employees", Err: err}
	}
	return employees, nil
}

func (r *EmployeeRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Employee{}, id).Error; err != nil {
		return &models.PersistenceError{Op: "delete employee", Err: err}
	}
	return nil
}
