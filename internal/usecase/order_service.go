package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
)

// shipmentQueue — зависимость на фоновую отправку заказов в Shiprocket.
type shipmentQueue interface {
	Enqueue(order *domain.Order, items []*domain.OrderItem) bool
}

// OrderService — прикладная логика заказов: оформление, чтение, админские операции.
type OrderService struct {
	orders   ports.OrderRepository
	store    ports.CacheStore
	inv      *cache.Invalidator
	dispatch shipmentQueue
	log      ports.Logger
	ttl      time.Duration
}

// NewOrderService — DI-конструктор. dispatch может быть nil (Shiprocket выключен).
func NewOrderService(
	orders ports.OrderRepository,
	store ports.CacheStore,
	inv *cache.Invalidator,
	dispatch shipmentQueue,
	log ports.Logger,
	ttl time.Duration,
) *OrderService {
	return &OrderService{
		orders:   orders,
		store:    store,
		inv:      inv,
		dispatch: dispatch,
		log:      log,
		ttl:      ttl,
	}
}

// CheckoutItem — позиция заказа при оформлении.
type CheckoutItem struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductPrice  float64 `json:"product_price"`
	DiscountPrice float64 `json:"discount_price"`
	Quantity      int     `json:"quantity"`
	Subtotal      float64 `json:"subtotal"`
}

// CheckoutInput — данные оформления заказа.
type CheckoutInput struct {
	CustomerName     string
	CustomerLastName string
	CustomerEmail    string
	CustomerPhone    string
	ShippingAddress  string
	City             string
	PostalCode       string
	Country          string
	TotalAmount      float64
	Items            []CheckoutItem
}

// Checkout — создаёт заказ со статусом pending, сохраняет позиции
// и передаёт заказ диспетчеру для отправки в Shiprocket (фоново,
// ответ клиенту не ждёт внешний сервис).
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	if in.CustomerName == "" || in.CustomerEmail == "" || in.ShippingAddress == "" || in.Items == nil {
		return nil, fmt.Errorf("%w: missing required fields", errInvalidInput)
	}

	order := &domain.Order{
		CustomerName:     in.CustomerName,
		CustomerLastName: in.CustomerLastName,
		CustomerEmail:    in.CustomerEmail,
		CustomerPhone:    in.CustomerPhone,
		ShippingAddress:  in.ShippingAddress,
		City:             in.City,
		PostalCode:       in.PostalCode,
		Country:          in.Country,
		TotalAmount:      in.TotalAmount,
		Status:           domain.StatusPending,
	}

	items := make([]*domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &domain.OrderItem{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			ProductPrice:  it.ProductPrice,
			DiscountPrice: it.DiscountPrice,
			Quantity:      it.Quantity,
			Subtotal:      it.Subtotal,
		})
	}

	if err := s.orders.Save(ctx, order, items); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	s.inv.Invalidate(ctx, cache.GroupOrders, order.ID)

	if s.dispatch != nil {
		if !s.dispatch.Enqueue(order, items) {
			s.log.Warnf(ctx, "shipment queue full, order=%s not dispatched", order.ID)
		}
	}

	s.log.Infof(ctx, "order created id=%s items=%d", order.ID, len(items))
	return order, nil
}

// OrderDetails — заказ с позициями; дубли одного товара слиты в одну строку.
type OrderDetails struct {
	Order *domain.Order       `json:"order"`
	Items []*domain.OrderItem `json:"items"`
}

// GetOrder — заказ с позициями для покупателя.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*OrderDetails, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.ItemsByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderDetails{Order: order, Items: MergeItems(items)}, nil
}

// OrdersByEmail — заказы покупателя, новые первыми.
func (s *OrderService) OrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	return s.orders.ListByEmail(ctx, email)
}

// StatsByEmail — сводка по заказам покупателя; отменённые не входят в сумму.
func (s *OrderService) StatsByEmail(ctx context.Context, email string) (*domain.OrderStats, error) {
	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	stats := &domain.OrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case domain.StatusPending:
			stats.PendingOrders++
		case domain.StatusProcessing:
			stats.ProcessingOrders++
		case domain.StatusShipped, domain.StatusOutForDelivery:
			// shippedOrders — поле контракта витрины; out_for_delivery
			// считаем отгруженным, отдельной графы у фронта нет.
			stats.ShippedOrders++
		case domain.StatusDelivered:
			stats.DeliveredOrders++
		case domain.StatusCancelled:
			stats.CancelledOrders++
		}
		if o.Status != domain.StatusCancelled {
			stats.TotalSpent += o.TotalAmount
		}
	}
	return stats, nil
}

// ---------- админские операции ----------

// AdminListOrders — все заказы (кэшируется единым списком).
func (s *OrderService) AdminListOrders(ctx context.Context) ([]*domain.Order, error) {
	return cache.Cached(ctx, s.store, s.log, cache.AdminOrdersKey, s.ttl,
		func(ctx context.Context) ([]*domain.Order, error) {
			return s.orders.ListAll(ctx)
		})
}

// AdminGetOrder — заказ с позициями (кэш по id; "не найдено" тоже кэшируется).
func (s *OrderService) AdminGetOrder(ctx context.Context, id string) (*OrderDetails, error) {
	key := cache.AdminOrderKey(id)
	return cache.Cached(ctx, s.store, s.log, key, s.ttl, func(ctx context.Context) (*OrderDetails, error) {
		order, err := s.orders.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		items, err := s.orders.ItemsByOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		return &OrderDetails{Order: order, Items: items}, nil
	})
}

// UpdateOrderStatus — административная смена статуса с инвалидацией группы заказов.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status", errInvalidInput)
	}

	if err := s.orders.UpdateStatus(ctx, id, domain.OrderStatus(status)); err != nil {
		return nil, err
	}

	s.inv.Invalidate(ctx, cache.GroupOrders, id)
	return s.orders.GetByID(ctx, id)
}

// DeleteOrder — удалить заказ (позиции каскадом) и снять кэш группы заказов.
// Каскада на товарные кэши нет — заказ на них не влияет.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.inv.Invalidate(ctx, cache.GroupOrders, id)
	return nil
}

// MergeItems — сливает дубли одного product_id в одну позицию,
// суммируя количество и стоимость. Порядок первых вхождений сохраняется.
func MergeItems(items []*domain.OrderItem) []*domain.OrderItem {
	merged := make([]*domain.OrderItem, 0, len(items))
	index := make(map[string]*domain.OrderItem, len(items))

	for _, it := range items {
		if existing, ok := index[it.ProductID]; ok {
			existing.Quantity += it.Quantity
			existing.Subtotal += it.Subtotal
			continue
		}
		clone := *it
		index[it.ProductID] = &clone
		merged = append(merged, &clone)
	}
	return merged
}
