package Controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"restaurant-manager/controllers"
	"restaurant-manager/models"
	"restaurant-manager/services"
	"restaurant-manager/utils"
)

func setupTestDBForTables(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Dish{}, &models.Order{}, &models.OrderItem{}, &models.Table{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.POST("/tables", tableCtrl.CreateTable)
	router.POST("/tables/:table_id/assign", tableCtrl.AssignTable)
	router.POST("/tables/:table_id/release", tableCtrl.ReleaseTable)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

// pendingOrder seeds a dish and opens an order on it through the service
// layer, so the endpoint under test gets a realistic PENDING order.
func pendingOrder(t *testing.T, db *gorm.DB) *models.Order {
	t.Helper()

	dish := models.Dish{Name: "Soup", Price: decimal.RequireFromString("5.00"), Category: "Starters"}
	assert.NoError(t, db.Create(&dish).Error)

	order, err := services.NewOrderService(db).Create("Guest", "",
		[]services.OrderItemInput{{DishID: dish.ID, Quantity: 1}}, nil)
	assert.NoError(t, err)
	return order
}

func TestGetAllTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{Number: "A1", Capacity: 2})
	orderID := uint(42)
	db.Create(&models.Table{Number: "B1", Capacity: 4, Occupied: true, OrderID: &orderID})

	router := setupTableRouter(db)
	req, err := http.NewRequest("GET", "/tables", nil)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	// ?available=true must hide the occupied table.
	req, err = http.NewRequest("GET", "/tables?available=true", nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data = response["data"].([]interface{})
	if assert.Len(t, data, 1) {
		free := data[0].(map[string]interface{})
		assert.Equal(t, "A1", free["number"])
	}
}

func TestAssignTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{Number: "C1", Capacity: 4}
	db.Create(&table)
	first := pendingOrder(t, db)
	second := pendingOrder(t, db)

	router := setupTableRouter(db)
	url := "/tables/" + strconv.Itoa(int(table.ID)) + "/assign"

	w := postJSON(t, router, url, map[string]interface{}{"order_id": first.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table assigned", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, true, data["occupied"])
	assert.EqualValues(t, first.ID, data["order_id"])

	// Seating a second order at the same table is a conflict.
	w = postJSON(t, router, url, map[string]interface{}{"order_id": second.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReleaseTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{Number: "C1", Capacity: 4}
	db.Create(&table)
	order := pendingOrder(t, db)

	router := setupTableRouter(db)
	base := "/tables/" + strconv.Itoa(int(table.ID))

	w := postJSON(t, router, base+"/assign", map[string]interface{}{"order_id": order.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, router, base+"/release", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table released", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["occupied"])
	assert.Nil(t, data["order_id"])

	// Releasing an already free table is an invalid transition.
	w = postJSON(t, router, base+"/release", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteOccupiedTableEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{Number: "C1", Capacity: 4}
	db.Create(&table)
	order := pendingOrder(t, db)

	router := setupTableRouter(db)
	base := "/tables/" + strconv.Itoa(int(table.ID))

	w := postJSON(t, router, base+"/assign", map[string]interface{}{"order_id": order.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	req, err := http.NewRequest("DELETE", base, nil)
	assert.NoError(t, err)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}
