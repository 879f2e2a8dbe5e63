package repositories

import (
	"time"

	"gorm.io/gorm"

	"restaurant-manager/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create persists the order together with its items.
func (r *OrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return &models.PersistenceError{Op: "create order", Err: err}
	}
	return nil
}

func (r *OrderRepository) Save(order *models.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		return &models.PersistenceError{Op: "save order", Err: err}
	}
	return nil
}

// UpdateStatus writes only the status column, leaving the item rows alone.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return &models.PersistenceError{Op: "update order status", Err: err}
	}
	return nil
}

// UpdateTableRef points the order at a table (or clears the reference).
func (r *OrderRepository) UpdateTableRef(id uint, tableID *uint) error {
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).Update("table_id", tableID).Error; err != nil {
		return &models.PersistenceError{Op: "update order table", Err: err}
	}
	return nil
}

func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) FindAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, &models.PersistenceError{Op: "list orders", Err: err}
	}
	return orders, nil
}

func (r *OrderRepository) FindByStatus(status string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, &models.PersistenceError{Op: "list orders by status", Err: err}
	}
	return orders, nil
}

// FindCompletedBetween returns completed orders created in [start, end),
// items included, for the reporting aggregations.
func (r *OrderRepository) FindCompletedBetween(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.OrderStatusCompleted, start, end).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return nil, &models.PersistenceError{Op: "list completed orders", Err: err}
	}
	return orders, nil
}

// Delete removes the order and its items. The item rows go first so the
// cascade does not depend on foreign-key enforcement in the fallback store.
func (r *OrderRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return &models.PersistenceError{Op: "delete order", Err: err}
	}
	return nil
}

func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, &models.PersistenceError{Op: "count orders", Err: err}
	}
	return count, nil
}
