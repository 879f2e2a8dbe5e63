package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"restaurant-manager/models"
	"restaurant-manager/repositories"
	"restaurant-manager/utils"
)

// TableService manages table occupancy. Invariant after every mutation:
// a table is occupied exactly when it references an order.
type TableService struct {
	db     *gorm.DB
	tables *repositories.TableRepository
	orders *repositories.OrderRepository
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{
		db:     db,
		tables: repositories.NewTableRepository(db),
		orders: repositories.NewOrderRepository(db),
	}
}

func (s *TableService) Create(number string, capacity int, location string) (*models.Table, error) {
	if strings.TrimSpace(number) == "" {
		return nil, &models.ValidationError{Field: "number", Reason: "must not be empty"}
	}
	if capacity < 1 {
		return nil, &models.ValidationError{Field: "capacity", Reason: "must be at least 1"}
	}

	table := &models.Table{
		Number:   strings.TrimSpace(number),
		Capacity: capacity,
		Location: location,
	}
	if err := s.tables.Create(table); err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %s created (capacity %d)", table.Number, table.Capacity)
	return table, nil
}

func (s *TableService) Update(id uint, number string, capacity int, location string) (*models.Table, error) {
	if strings.TrimSpace(number) == "" {
		return nil, &models.ValidationError{Field: "number", Reason: "must not be empty"}
	}
	if capacity < 1 {
		return nil, &models.ValidationError{Field: "capacity", Reason: "must be at least 1"}
	}

	table, err := s.tables.FindByID(id)
	if err != nil {
		return nil, err
	}

	table.Number = strings.TrimSpace(number)
	table.Capacity = capacity
	table.Location = location
	if err := s.tables.Save(table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *TableService) Get(id uint) (*models.Table, error) {
	return s.tables.FindByID(id)
}

func (s *TableService) List() ([]models.Table, error) {
	return s.tables.FindAll()
}

func (s *TableService) ListAvailable() ([]models.Table, error) {
	return s.tables.FindAvailable()
}

// Assign seats an existing order at a table. Fails with a ConflictError if
// the table is already occupied, leaving the existing assignment untouched.
func (s *TableService) Assign(tableID, orderID uint) (*models.Table, error) {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	var table *models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.WithTx(tx).FindByID(orderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return &models.ValidationError{Field: "order_id", Reason: fmt.Sprintf("order %d does not exist", orderID)}
			}
			return err
		}
		if order.IsTerminal() {
			return &models.InvalidStateError{Entity: "order", ID: orderID, State: order.Status, Action: "seat"}
		}

		// Re-seating moves the order: its previous table is freed in the
		// same transaction so it can never stay pointed at this order.
		if order.TableID != nil {
			if *order.TableID == tableID {
				table, err = s.tables.WithTx(tx).FindByID(tableID)
				return err
			}
			if err := vacateTable(s.tables.WithTx(tx), *order.TableID, orderID); err != nil {
				return err
			}
		}

		if err := occupyTable(s.tables.WithTx(tx), tableID, orderID); err != nil {
			return err
		}

		if err := s.orders.WithTx(tx).UpdateTableRef(orderID, &tableID); err != nil {
			return err
		}

		table, err = s.tables.WithTx(tx).FindByID(tableID)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %d assigned to order %d", tableID, orderID)
	return table, nil
}

// Release frees an occupied table without touching the order status.
func (s *TableService) Release(tableID uint) (*models.Table, error) {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	var table *models.Table
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		table, err = s.tables.WithTx(tx).FindByID(tableID)
		if err != nil {
			return err
		}
		if !table.Occupied {
			return &models.InvalidStateError{Entity: "table", ID: tableID, State: "available", Action: "release"}
		}

		table.Occupied = false
		table.OrderID = nil
		return s.tables.WithTx(tx).Save(table)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %d released", tableID)
	return table, nil
}

// Delete refuses to remove a table that is still seating an order.
func (s *TableService) Delete(id uint) error {
	lifecycleMu.Lock()
	defer lifecycleMu.Unlock()

	table, err := s.tables.FindByID(id)
	if err != nil {
		return err
	}
	if table.Occupied {
		return &models.ConflictError{Entity: "table", ID: id, Reason: "cannot delete an occupied table"}
	}

	if err := s.tables.Delete(id); err != nil {
		return err
	}
	utils.InfoLogger.Printf("Table %d deleted", id)
	return nil
}

// occupyTable flips a table to occupied for the given order, failing if it
// is already taken. Callers run it inside a transaction.
func occupyTable(tables *repositories.TableRepository, tableID, orderID uint) error {
	table, err := tables.FindByID(tableID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.ValidationError{Field: "table_id", Reason: fmt.Sprintf("table %d does not exist", tableID)}
		}
		return err
	}
	if table.Occupied {
		occupant := "another order"
		if table.OrderID != nil {
			occupant = fmt.Sprintf("order %d", *table.OrderID)
		}
		return &models.ConflictError{Entity: "table", ID: tableID, Reason: "already occupied by " + occupant}
	}

	table.Occupied = true
	table.OrderID = &orderID
	return tables.Save(table)
}

// vacateTable clears the occupancy left by the given order. A table that was
// already released, or re-assigned to a different order, is left alone.
func vacateTable(tables *repositories.TableRepository, tableID, orderID uint) error {
	table, err := tables.FindByID(tableID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if !table.Occupied || table.OrderID == nil || *table.OrderID != orderID {
		return nil
	}

	table.Occupied = false
	table.OrderID = nil
	return tables.Save(table)
}
