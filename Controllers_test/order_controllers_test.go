package Controllers_test

import (
	"bytes"
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
	"restaurant-manager/utils"
)

func setupTestDBForOrders(t *testing.T) *gorm.DB {
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

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	orderCtrl := controllers.NewOrderController(db)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.POST("/orders", orderCtrl.CreateOrder)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)
	router.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		assert.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest("POST", url, &body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)

	soup := models.Dish{Name: "Soup", Price: decimal.RequireFromString("5.00"), Category: "Starters"}
	bread := models.Dish{Name: "Bread", Price: decimal.RequireFromString("1.50"), Category: "Sides"}
	db.Create(&soup)
	db.Create(&bread)

	router := setupOrderRouter(db)
	w := postJSON(t, router, "/orders", map[string]interface{}{
		"customer_name": "Alice",
		"items": []map[string]interface{}{
			{"dish_id": soup.ID, "quantity": 2},
			{"dish_id": bread.ID, "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Order created", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "11.5", data["total_price"])
	order := data["order"].(map[string]interface{})
	assert.Equal(t, "PENDING", order["status"])
	assert.Len(t, order["items"], 2)
}

func TestCreateOrderEndpointUnknownDish(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	router := setupOrderRouter(db)

	w := postJSON(t, router, "/orders", map[string]interface{}{
		"customer_name": "Alice",
		"items":         []map[string]interface{}{{"dish_id": 999, "quantity": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["status"])
}

func TestCompleteOrderEndpointIsTerminal(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)

	soup := models.Dish{Name: "Soup", Price: decimal.RequireFromString("5.00"), Category: "Starters"}
	db.Create(&soup)

	router := setupOrderRouter(db)
	w := postJSON(t, router, "/orders", map[string]interface{}{
		"customer_name": "Alice",
		"items":         []map[string]interface{}{{"dish_id": soup.ID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data struct {
			Order struct {
				ID uint `json:"id"`
			} `json:"order"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	url := "/orders/" + strconv.Itoa(int(created.Data.Order.ID)) + "/complete"

	first := postJSON(t, router, url, nil)
	assert.Equal(t, http.StatusOK, first.Code)

	// A completed order cannot be completed or cancelled again.
	second := postJSON(t, router, url, nil)
	assert.Equal(t, http.StatusConflict, second.Code)

	cancel := postJSON(t, router, "/orders/"+strconv.Itoa(int(created.Data.Order.ID))+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, cancel.Code)
}

func TestGetOrdersFilteredByStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)

	soup := models.Dish{Name: "Soup", Price: decimal.RequireFromString("5.00"), Category: "Starters"}
	db.Create(&soup)

	router := setupOrderRouter(db)
	for _, name := range []string{"Alice", "Bob"} {
		w := postJSON(t, router, "/orders", map[string]interface{}{
			"customer_name": name,
			"items":         []map[string]interface{}{{"dish_id": soup.ID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	req, err := http.NewRequest("GET", "/orders?status=PENDING", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of orders", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
}
