package repositories

import (
	"gorm.io/gorm"

	"restaurant-manager/models"
)

type DishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *DishRepository) WithTx(tx *gorm.DB) *DishRepository {
	return &DishRepository{db: tx}
}

func (r *DishRepository) Create(dish *models.Dish) error {
	if err := r.db.Create(dish).Error; err != nil {
		return &models.PersistenceError{Op: "create dish", Err: err}
	}
	return nil
}

func (r *DishRepository) Save(dish *models.Dish) error {
	if err := r.db.Save(dish).Error; err != nil {
		return &models.PersistenceError{Op: "save dish", Err: err}
	}
	return nil
}

func (r *DishRepository) FindByID(id uint) (*models.Dish, error) {
	var dish models.Dish
	if err := r.db.First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *DishRepository) FindAll() ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.Order("name").Find(&dishes).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list dishes", Err: err}
	}
	return dishes, nil
}

func (r *DishRepository) FindByCategory(category string) ([]models.Dish, error) {
	var dishes []models.Dish
	if err := r.db.Where("category = ?", category).Order("name").Find(&dishes).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list dishes by category", Err: err}
	}
	return dishes, nil
}

func (r *DishRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Dish{}).
		Distinct("category").
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, &models.PersistenceError{Op: "list dish categories", Err: err}
	}
	return categories, nil
}

func (r *DishRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Dish{}, id).Error; err != nil {
		return &models.PersistenceError{Op: "delete dish", Err: err}
	}
	return nil
}
