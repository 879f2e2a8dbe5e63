package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"restaurant-manager/models"
	"restaurant-manager/repositories"
	"restaurant-manager/utils"
)

// OrderService owns the order lifecycle: PENDING -> COMPLETED or CANCELLED,
// both terminal. It is the only service with cross-entity coordination,
// keeping table occupancy consistent with order state.
type OrderService struct {
	db     *gorm.DB
	orders *repositories.OrderRepository
	dishes *repositories.DishRepository
	tables *repositories.TableRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:     db,
		orders: repositories.NewOrderRepository(db),
		dishes: repositories.NewDishRepository(db),
		tables: repositories.NewTableRepository(db),
	}
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	DishID   uint `json:"dish_id"`
	Quantity int  `json:"quantity"`
}

// Create validates the request, snapshots dish names and prices into the
// items and persists everything in one transaction. When a table is given
// it is assigned in the same transaction, so a table conflict leaves no
// partial order behind.
func (s *OrderService) Create(customerName, notes string, items []OrderItemInput, tableID *uint) (*models.Order, error) {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	if strings.TrimSpace(customerName) == "" {
		return nil, &models.ValidationError{Field: "customer_name", Reason: "must not be empty"}
	}
	if len(items) == 0 {
		return nil, &models.ValidationError{Field: "items", Reason: "order needs at least one item"}
	}

	merged, err := s.buildItems(items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerName: strings.TrimSpace(customerName),
		Status:       models.OrderStatusPending,
		Notes:        notes,
		TableID:      tableID,
		Items:        merged,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orders.WithTx(tx).Create(order); err != nil {
			return err
		}
		if tableID != nil {
			if err := occupyTable(s.tables.WithTx(tx), *tableID, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d created for %q (%d items, total %s)",
		order.ID, order.CustomerName, len(order.Items), order.TotalPrice().StringFixed(2))
	return order, nil
}

// buildItems resolves each requested dish and captures its current name and
// price. Duplicate dish lines collapse into one with the quantities summed,
// same as adding a dish twice while composing an order.
func (s *OrderService) buildItems(items []OrderItemInput) ([]models.OrderItem, error) {
	var merged []models.OrderItem
	index := make(map[uint]int)

	for _, in := range items {
		if in.Quantity < 1 {
			return nil, &models.ValidationError{
				Field:  "items",
				Reason: fmt.Sprintf("quantity %d for dish %d, must be at least 1", in.Quantity, in.DishID),
			}
		}

		if pos, ok := index[in.DishID]; ok {
			merged[pos].Quantity += in.Quantity
			continue
		}

		dish, err := s.dishes.FindByID(in.DishID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, &models.ValidationError{
					Field:  "items",
					Reason: fmt.Sprintf("dish %d does not exist", in.DishID),
				}
			}
			return nil, err
		}

		index[in.DishID] = len(merged)
		merged = append(merged, models.OrderItem{
			DishID:    dish.ID,
			DishName:  dish.Name,
			UnitPrice: dish.Price,
			Quantity:  in.Quantity,
		})
	}

	return merged, nil
}

// Complete transitions a pending order to COMPLETED and releases its table.
func (s *OrderService) Complete(id uint) (*models.Order, error) {
	return s.transition(id, models.OrderStatusCompleted, "complete")
}

// Cancel transitions a pending order to CANCELLED and releases its table.
func (s *OrderService) Cancel(id uint) (*models.Order, error) {
	return s.transition(id, models.OrderStatusCancelled, "cancel")
}

func (s *OrderService) transition(id uint, target, action string) (*models.Order, error) {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orders.WithTx(tx).FindByID(id)
		if err != nil {
			return err
		}
		if order.Status != models.OrderStatusPending {
			return &models.InvalidStateError{Entity: "order", ID: id, State: order.Status, Action: action}
		}

		order.Status = target
		if err := s.orders.WithTx(tx).UpdateStatus(id, target); err != nil {
			return err
		}

		// A terminal order never keeps a table seated.
		if order.TableID != nil {
			if err := vacateTable(s.tables.WithTx(tx), *order.TableID, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d is now %s", order.ID, order.Status)
	return order, nil
}

func (s *OrderService) Get(id uint) (*models.Order, error) {
	return s.orders.FindByID(id)
}

func (s *OrderService) List() ([]models.Order, error) {
	return s.orders.FindAll()
}

func (s *OrderService) ListByStatus(status string) ([]models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		return nil, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	return s.orders.FindByStatus(status)
}

// Delete removes a terminal order and its items. Pending orders must be
// cancelled first so an occupied table can never point at a missing order.
func (s *OrderService) Delete(id uint) error {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	order, err := s.orders.FindByID(id)
	if err != nil {
		return err
	}
	if !order.IsTerminal() {
		return &models.InvalidStateError{Entity: "order", ID: id, State: order.Status, Action: "delete"}
	}

	if err := s.orders.Delete(id); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Order %d deleted", id)
	return nil
}
