package domain

import "time"

// OrderStatus — канонический статус заказа. Значение хранится в БД
// и отдаётся клиентам как есть, поэтому набор фиксирован.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusProcessing     OrderStatus = "processing"
	StatusShipped        OrderStatus = "shipped"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// ValidStatus — проверяет, что строка входит в допустимый набор статусов.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal — статусы, после которых сверка с курьером не нужна.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order — локальный заказ. Shiprocket-идентификаторы появляются асинхронно,
// после того как заказ ушёл во внешний сервис доставки.
type Order struct {
	ID                string      `json:"id"`
	CustomerName      string      `json:"customer_name"`
	CustomerLastName  string      `json:"customer_last_name,omitempty"`
	CustomerEmail     string      `json:"customer_email"`
	CustomerPhone     string      `json:"customer_phone,omitempty"`
	ShippingAddress   string      `json:"shipping_address"`
	City              string      `json:"city,omitempty"`
	PostalCode        string      `json:"postal_code,omitempty"`
	Country           string      `json:"country,omitempty"`
	TotalAmount       float64     `json:"total_amount"`
	Status            OrderStatus `json:"status"`
	ShiprocketOrderID string      `json:"shiprocket_order_id,omitempty"`
	// ShiprocketChannelID — внешний идентификатор отслеживания (channel_order_id).
	ShiprocketChannelID string    `json:"shiprocket_channel_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DisplayID — идентификатор для клиента: внешний, если уже присвоен, иначе локальный.
func (o *Order) DisplayID() string {
	if o.ShiprocketChannelID != "" {
		return o.ShiprocketChannelID
	}
	return o.ID
}

// OrderItem — позиция заказа.
type OrderItem struct {
	ID            string  `json:"id"`
	OrderID       string  `json:"order_id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductPrice  float64 `json:"product_price"`
	DiscountPrice float64 `json:"discount_price,omitempty"`
	Quantity      int     `json:"quantity"`
	Subtotal      float64 `json:"subtotal"`
}

// OrderStats — сводка по заказам покупателя.
type OrderStats struct {
	TotalOrders      int     `json:"totalOrders"`
	PendingOrders    int     `json:"pendingOrders"`
	ProcessingOrders int     `json:"processingOrders"`
	ShippedOrders    int     `json:"shippedOrders"`
	DeliveredOrders  int     `json:"deliveredOrders"`
	CancelledOrders  int     `json:"cancelledOrders"`
	TotalSpent       float64 `json:"totalSpent"`
}
