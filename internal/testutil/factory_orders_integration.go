//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// Мини-генератор валидного заказа. ID и timestamps назначает репозиторий/БД.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	o := domain.Order{
		CustomerName:    "John",
		CustomerEmail:   "john-" + UniqSuffix() + "@example.com",
		CustomerPhone:   "+91-900000000",
		ShippingAddress: "Main st 1",
		City:            "Metropolis",
		PostalCode:      "110001",
		Country:         "India",
		TotalAmount:     123,
		Status:          domain.StatusPending,
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithEmail(email string) func(*domain.Order) {
	return func(o *domain.Order) { o.CustomerEmail = email }
}

func WithStatus(status domain.OrderStatus) func(*domain.Order) {
	return func(o *domain.Order) { o.Status = status }
}

// MakeItems — n позиций с возрастающей ценой.
func MakeItems(n int) []*domain.OrderItem {
	items := make([]*domain.OrderItem, 0, n)
	for i := 0; i < n; i++ {
		price := float64(10 * (i + 1))
		items = append(items, &domain.OrderItem{
			ProductID:    "prod-" + UniqSuffix(),
			ProductName:  "Item",
			ProductPrice: price,
			Quantity:     1,
			Subtotal:     price,
		})
	}
	return items
}
