package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-manager/services"
	"restaurant-manager/utils"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{svc: services.NewOrderService(db)}
}

// GetAllOrders -> list orders with items; ?status= filters by lifecycle state.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := c.Query("status")

	var err error
	var orders interface{}
	if status != "" {
		orders, err = oc.svc.ListByStatus(status)
	} else {
		orders, err = oc.svc.List()
	}
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> new PENDING order, optionally seating it at a table.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		CustomerName string                    `json:"customer_name"`
		Notes        string                    `json:"notes"`
		TableID      *uint                     `json:"table_id"`
		Items        []services.OrderItemInput `json:"items"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.Create(req.CustomerName, req.Notes, req.Items, req.TableID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":       order,
		"total_price": order.TotalPrice(),
	})
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.Get(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order":       order,
		"total_price": order.TotalPrice(),
	})
}

// CompleteOrder -> PENDING -> COMPLETED, releasing the table if one is set.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.Complete(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order completed", order)
}

// CancelOrder -> PENDING -> CANCELLED, releasing the table if one is set.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.svc.Cancel(id)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := parseID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := oc.svc.Delete(id); err != nil {
		utils.RespondDomainError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"id": id})
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
