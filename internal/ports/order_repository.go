package ports

import (
	"context"

	"github.com/Gunvolt24/shop_backend/internal/domain"
)

// OrderRepository — хранилище заказов и их позиций.
type OrderRepository interface {
	// Save — транзакционно сохраняет заказ вместе с позициями.
	Save(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error

	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	ItemsByOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error)
	Delete(ctx context.Context, id string) error

	// UpdateStatus — обновляет только статус заказа.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error

	// SetShiprocketIDs — фиксирует внешние идентификаторы после пуша в Shiprocket.
	SetShiprocketIDs(ctx context.Context, id, shiprocketOrderID, channelID string) error

	// ListSyncable — заказы с внешним channel id и нетерминальным статусом
	// (кандидаты на сверку статуса с курьером).
	ListSyncable(ctx context.Context) ([]*domain.Order, error)
}
