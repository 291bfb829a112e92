package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/realtime"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB, hub *realtime.Hub) *OrderController {
	return &OrderController{
		DB:     db,
		Orders: services.NewOrderService(db, hub),
	}
}

// CreateOrder -> buat order dari cart customer (token sesi wajib)
func (oc *OrderController) CreateOrder(c *gin.Context) {
	scope, ok := middlewares.SessionScope(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
		return
	}

	type ReqBody struct {
		Items []services.CartLine `json:"items"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order items required"))
		return
	}

	order, err := oc.Orders.Create(scope, body.Items)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetTableOrders -> order aktif meja ini (customer view, buat resync)
func (oc *OrderController) GetTableOrders(c *gin.Context) {
	scope, ok := middlewares.SessionScope(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, utils.ErrUnauthorized)
		return
	}

	orders, err := oc.Orders.ListByTable(scope)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table orders", orders)
}

// GetRestaurantOrders -> list order untuk staff, filter status & limit
func (oc *OrderController) GetRestaurantOrders(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid restaurant id"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")

	orders, err := oc.Orders.ListByRestaurant(tenantFromContext(c), uint(restaurantID), status, limit)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restaurant orders", orders)
}

// UpdateOrderStatus -> staff mengganti status order
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status required"))
		return
	}

	order, err := oc.Orders.UpdateStatus(tenantFromContext(c), uint(orderID), body.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order updated", gin.H{
		"order_id":   order.ID,
		"status":     order.Status,
		"updated_at": order.UpdatedAt,
	})
}

// UpdateOrderItemStatus -> staff/chef mengganti status satu item
func (oc *OrderController) UpdateOrderItemStatus(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid item id"))
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("status required"))
		return
	}

	item, err := oc.Orders.UpdateItemStatus(tenantFromContext(c), uint(itemID), body.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order item updated", gin.H{
		"item_id":    item.ID,
		"status":     item.Status,
		"updated_at": item.UpdatedAt,
	})
}
