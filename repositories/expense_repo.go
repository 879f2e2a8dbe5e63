package repositories

import (
	"time"

	"gorm.io/gorm"

	"restaurant-manager/models"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(expense *models.Expense) error {
	if err := r.db.Create(expense).Error; err != nil {
		return &models.PersistenceError{Op: "create expense", Err: err}
	}
	return nil
}

func (r *ExpenseRepository) Save(expense *models.Expense) error {
	if err := r.db.Save(expense).Error; err != nil {
		return &models.PersistenceError{Op: "save expense", Err: err}
	}
	return nil
}

func (r *ExpenseRepository) FindByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := r.db.First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) FindAll() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := r.db.Order("spent_at DESC").Find(&expenses).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list expenses", Err: err}
	}
	return expenses, nil
}

func (r *ExpenseRepository) FindBetween(start, end time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.Where("spent_at >= ? AND spent_at < ?", start, end).
		Order("spent_at").
		Find(&expenses).Error
	if err != nil {
		return nil, &models.PersistenceError{Op: "list expenses by range", Err: err}
	}
	return expenses, nil
}

func (r *ExpenseRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Expense{}, id).Error; err != nil {
		return &models.PersistenceError{Op: "delete expense", Err: err}
	}
	return nil
}
