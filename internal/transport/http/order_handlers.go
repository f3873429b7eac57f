package rest

import (
	"net/http"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// checkoutRequest — тело оформления заказа с витрины.
type checkoutRequest struct {
	CustomerName     string                 `json:"customer_name"`
	CustomerLastName string                 `json:"customer_last_name"`
	CustomerEmail    string                 `json:"customer_email"`
	CustomerPhone    string                 `json:"customer_phone"`
	ShippingAddress  string                 `json:"shipping_address"`
	City             string                 `json:"city"`
	PostalCode       string                 `json:"postal_code"`
	Country          string                 `json:"country"`
	TotalAmount      float64                `json:"total_amount"`
	Items            []usecase.CheckoutItem `json:"items"`
}

func (h *Handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	order, err := h.orders.Checkout(c.Request.Context(), usecase.CheckoutInput{
		CustomerName:     req.CustomerName,
		CustomerLastName: req.CustomerLastName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		ShippingAddress:  req.ShippingAddress,
		City:             req.City,
		PostalCode:       req.PostalCode,
		Country:          req.Country,
		TotalAmount:      req.TotalAmount,
		Items:            req.Items,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// userOrderView — заказ для витрины: display_id показывает внешний номер,
// как только Shiprocket его присвоил.
type userOrderView struct {
	*domain.Order
	DisplayID string `json:"display_id"`
}

func (h *Handler) getOrder(c *gin.Context) {
	details, err := h.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":      userOrderView{Order: details.Order, DisplayID: details.Order.DisplayID()},
		"items":      details.Items,
		"display_id": details.Order.DisplayID(),
	})
}

// userOrders — заказы покупателя по email из query-параметра.
func (h *Handler) userOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	orders, err := h.orders.OrdersByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	views := make([]userOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, userOrderView{Order: o, DisplayID: o.DisplayID()})
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) userOrderStats(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	stats, err := h.orders.StatsByEmail(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ---------- админка ----------

func (h *Handler) adminListOrders(c *gin.Context) {
	orders, err := h.orders.AdminListOrders(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) adminGetOrder(c *gin.Context) {
	details, err := h.orders.AdminGetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, details)
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
