package repositories

import (
	"gorm.io/gorm"

	"restaurant-manager/models"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) WithTx(tx *gorm.DB) *TableRepository {
	return &TableRepository{db: tx}
}

func (r *TableRepository) Create(table *models.Table) error {
	if err := r.db.Create(table).Error; err != nil {
		return &models.PersistenceError{Op: "create table", Err: err}
	}
	return nil
}

func (r *TableRepository) Save(table *models.Table) error {
	if err := r.db.Save(table).Error; err != nil {
		return &models.PersistenceError{Op: "save table", Err: err}
	}
	return nil
}

func (r *TableRepository) FindByID(id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.First(&table, id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *TableRepository) FindAll() ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.Order("number").Find(&tables).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list tables", Err: err}
	}
	return tables, nil
}

func (r *TableRepository) FindAvailable() ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.Where("occupied = ?", false).Order("capacity").Find(&tables).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list available tables", Err: err}
	}
	return tables, nil
}

func (r *TableRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Table{}, id).Error; err != nil {
		return &models.PersistenceError{Op: "delete table", Err: err}
	}
	return nil
}

func (r *TableRepository) CountOccupied(occupied bool) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Table{}).Where("occupied = ?", occupied).Count(&count).Error; err != nil {
		return 0, &models.PersistenceError{Op: "count tables", Err: err}
	}
	return count, nil
}
