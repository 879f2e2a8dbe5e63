package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-manager/models"
	"restaurant-manager/repositories"
	"restaurant-manager/utils"
)

// DishService manages the dish catalog. Orders copy dish name and price at
// add time, so edits here never rewrite history.
type DishService struct {
	dishes *repositories.DishRepository
}

func NewDishService(db *gorm.DB) *DishService {
	return &DishService{dishes: repositories.NewDishRepository(db)}
}

func (s *DishService) Create(name string, price decimal.Decimal, description, category string) (*models.Dish, error) {
	if err := validateDish(name, price); err != nil {
		return nil, err
	}

	dish := &models.Dish{
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: description,
		Category:    category,
	}
	if err := s.dishes.Create(dish); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Dish %q created at %s", dish.Name, utils.FormatCurrencyEUR(dish.Price))
	return dish, nil
}

func (s *DishService) Update(id uint, name string, price decimal.Decimal, description, category string) (*models.Dish, error) {
	if err := validateDish(name, price); err != nil {
		return nil, err
	}

	dish, err := s.dishes.FindByID(id)
	if err != nil {
		return nil, err
	}

	dish.Name = strings.TrimSpace(name)
	dish.Price = price
	dish.Description = description
	dish.Category = category
	if err := s.dishes.Save(dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// SetImage stores the dish photo blob as-is.
func (s *DishService) SetImage(id uint, image []byte) error {
	dish, err := s.dishes.FindByID(id)
	if err != nil {
		return err
	}
	dish.Image = image
	return s.dishes.Save(dish)
}

func (s *DishService) GetImage(id uint) ([]byte, error) {
	dish, err := s.dishes.FindByID(id)
	if err != nil {
		return nil, err
	}
	return dish.Image, nil
}

func (s *DishService) Get(id uint) (*models.Dish, error) {
	return s.dishes.FindByID(id)
}

func (s *DishService) List() ([]models.Dish, error) {
	return s.dishes.FindAll()
}

func (s *DishService) ListByCategory(category string) ([]models.Dish, error) {
	return s.dishes.FindByCategory(category)
}

func (s *DishService) Categories() ([]string, error) {
	return s.dishes.Categories()
}

func (s *DishService) Delete(id uint) error {
	if _, err := s.dishes.FindByID(id); err != nil {
		return err
	}
	if err := s.dishes.Delete(id); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Dish %d deleted", id)
	return nil
}

func validateDish(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if price.IsNegative() {
		return &models.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}
