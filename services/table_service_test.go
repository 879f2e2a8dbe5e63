package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-manager/models"
)

func TestCreateTableValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewTableService(db)

	var validationErr *models.ValidationError

	_, err := svc.Create("", 4, "terrace")
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.Create("5", 0, "terrace")
	assert.ErrorAs(t, err, &validationErr)

	table, err := svc.Create("5", 4, "terrace")
	assert.NoError(t, err)
	assert.False(t, table.Occupied)
	assert.Nil(t, table.OrderID)
}

func TestAssignOccupiedTableConflict(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	table := seedTable(t, db, "3", 4)

	first, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 2}}, nil)
	assert.NoError(t, err)
	second, err := orders.Create("Bob", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, nil)
	assert.NoError(t, err)

	assigned, err := tables.Assign(table.ID, first.ID)
	assert.NoError(t, err)
	assert.True(t, assigned.Occupied)
	if assert.NotNil(t, assigned.OrderID) {
		assert.Equal(t, first.ID, *assigned.OrderID)
	}

	var conflictErr *models.ConflictError
	_, err = tables.Assign(table.ID, second.ID)
	assert.ErrorAs(t, err, &conflictErr)

	// The existing assignment must be untouched.
	current, err := tables.Get(table.ID)
	assert.NoError(t, err)
	assert.True(t, current.Occupied)
	if assert.NotNil(t, current.OrderID) {
		assert.Equal(t, first.ID, *current.OrderID)
	}
}

func TestAssignChecksOrder(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	table := seedTable(t, db, "3", 4)

	var validationErr *models.ValidationError
	_, err := tables.Assign(table.ID, 999)
	assert.ErrorAs(t, err, &validationErr)

	order, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, nil)
	assert.NoError(t, err)
	_, err = orders.Cancel(order.ID)
	assert.NoError(t, err)

	// Terminal orders can no longer be seated.
	var invalidStateErr *models.InvalidStateError
	_, err = tables.Assign(table.ID, order.ID)
	assert.ErrorAs(t, err, &invalidStateErr)
}

// Re-assigning an order to another table must free the old table in the
// same transaction, so no table can outlive the order it points at.
func TestAssignMovesOrderBetweenTables(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	first := seedTable(t, db, "1", 2)
	second := seedTable(t, db, "2", 4)

	order, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, &first.ID)
	assert.NoError(t, err)

	moved, err := tables.Assign(second.ID, order.ID)
	assert.NoError(t, err)
	assert.True(t, moved.Occupied)
	if assert.NotNil(t, moved.OrderID) {
		assert.Equal(t, order.ID, *moved.OrderID)
	}

	old, err := tables.Get(first.ID)
	assert.NoError(t, err)
	assert.False(t, old.Occupied)
	assert.Nil(t, old.OrderID)

	// Completing and deleting the order must leave no occupied table behind.
	_, err = orders.Complete(order.ID)
	assert.NoError(t, err)
	assert.NoError(t, orders.Delete(order.ID))

	var all []models.Table
	assert.NoError(t, db.Find(&all).Error)
	for _, table := range all {
		assert.False(t, table.Occupied, "table %s still occupied", table.Number)
		assert.Nil(t, table.OrderID)
	}
}

// Assigning the table the order already sits at changes nothing.
func TestAssignSameTableIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	table := seedTable(t, db, "3", 4)

	order, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, &table.ID)
	assert.NoError(t, err)

	again, err := tables.Assign(table.ID, order.ID)
	assert.NoError(t, err)
	assert.True(t, again.Occupied)
	if assert.NotNil(t, again.OrderID) {
		assert.Equal(t, order.ID, *again.OrderID)
	}
}

func TestReleaseRequiresOccupied(t *testing.T) {
	db := newTestDB(t)
	tables := NewTableService(db)
	table := seedTable(t, db, "3", 4)

	var invalidStateErr *models.InvalidStateError
	_, err := tables.Release(table.ID)
	assert.ErrorAs(t, err, &invalidStateErr)
}

func TestReleaseClearsOrderReference(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	table := seedTable(t, db, "3", 4)

	order, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, &table.ID)
	assert.NoError(t, err)

	seated, err := tables.Get(table.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, seated.OrderID) {
		assert.Equal(t, order.ID, *seated.OrderID)
	}

	released, err := tables.Release(table.ID)
	assert.NoError(t, err)
	assert.False(t, released.Occupied)
	assert.Nil(t, released.OrderID)
}

func TestDeleteOccupiedTableConflict(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db)
	tables := NewTableService(db)

	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	table := seedTable(t, db, "3", 4)

	_, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, &table.ID)
	assert.NoError(t, err)

	var conflictErr *models.ConflictError
	err = tables.Delete(table.ID)
	assert.ErrorAs(t, err, &conflictErr)

	// The table must still exist, still occupied.
	current, err := tables.Get(table.ID)
	assert.NoError(t, err)
	assert.True(t, current.Occupied)
	assert.NotNil(t, current.OrderID)
}

// The occupancy invariant must hold when read back through a fresh
// connection, not just in the session that wrote it.
func TestOccupancyInvariantSurvivesReopen(t *testing.T) {
	const dsn = "file:occupancy_reopen_test?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	migrateTestDB(t, db)

	orders := NewOrderService(db)
	soup := seedDish(t, db, "Soup", "5.00", "Starters")
	occupied := seedTable(t, db, "1", 2)
	free := seedTable(t, db, "2", 2)

	order, err := orders.Create("Alice", "", []OrderItemInput{{DishID: soup.ID, Quantity: 1}}, &occupied.ID)
	assert.NoError(t, err)

	reopened, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to reopen sqlite: %v", err)
	}

	var tables []models.Table
	assert.NoError(t, reopened.Find(&tables).Error)
	assert.Len(t, tables, 2)
	for _, table := range tables {
		assert.Equal(t, table.Occupied, table.OrderID != nil,
			"table %s breaks occupied <=> order reference", table.Number)
		if table.ID == occupied.ID && assert.NotNil(t, table.OrderID) {
			assert.Equal(t, order.ID, *table.OrderID)
		}
		if table.ID == free.ID {
			assert.False(t, table.Occupied)
		}
	}
}
