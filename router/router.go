package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-manager/controllers"
	"restaurant-manager/middlewares"
)

// SetupRouter builds the route table. The rate limiter is registered here,
// before any route, because gin snapshots each handler chain at registration.
func SetupRouter(db *gorm.DB, rateLimiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(rateLimiter.RateLimit())

	dishCtrl := controllers.NewDishController(db)
	orderCtrl := controllers.NewOrderController(db)
	tableCtrl := controllers.NewTableController(db)
	employeeCtrl := controllers.NewEmployeeController(db)
	financeCtrl := controllers.NewFinanceController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// DISHES (catalog + gallery)
	r.GET("/dishes", dishCtrl.GetAllDishes)
	r.POST("/dishes", dishCtrl.CreateDish)
	r.GET("/dishes/categories", dishCtrl.GetCategories)
	r.GET("/dishes/:dish_id", dishCtrl.GetDishByID)
	r.PATCH("/dishes/:dish_id", dishCtrl.UpdateDish)
	r.DELETE("/dishes/:dish_id", dishCtrl.DeleteDish)
	r.POST("/dishes/:dish_id/image", dishCtrl.UploadDishImage)
	r.GET("/dishes/:dish_id/image", dishCtrl.GetDishImage)

	// ORDERS (lifecycle: PENDING -> COMPLETED | CANCELLED)
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)
	r.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	r.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// TABLES (occupancy)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	r.POST("/tables/:table_id/assign", tableCtrl.AssignTable)
	r.POST("/tables/:table_id/release", tableCtrl.ReleaseTable)
	r.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// EMPLOYEES (hour tracking)
	r.GET("/employees", employeeCtrl.GetAllEmployees)
	r.POST("/employees", employeeCtrl.CreateEmployee)
	r.GET("/employees/:employee_id", employeeCtrl.GetEmployeeByID)
	r.PATCH("/employees/:employee_id", employeeCtrl.UpdateEmployee)
	r.POST("/employees/:employee_id/hours", employeeCtrl.AddWorkedHours)
	r.DELETE("/employees/:employee_id", employeeCtrl.DeleteEmployee)

	// EXPENSES + REPORTS
	r.GET("/expenses", financeCtrl.GetAllExpenses)
	r.POST("/expenses", financeCtrl.CreateExpense)
	r.DELETE("/expenses/:expense_id", financeCtrl.DeleteExpense)
	r.GET("/reports/revenue", financeCtrl.GetRevenueReport)
	r.GET("/reports/expenses", financeCtrl.GetExpenseReport)
	r.GET("/reports/profit", financeCtrl.GetProfitReport)
	r.GET("/reports/export", financeCtrl.ExportReport)
	r.GET("/dashboard/stats", financeCtrl.GetDashboardStats)

	return r
}
