package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports/mocks"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/golang/mock/gomock"
)

// fakeQueue — запись вызовов Enqueue вместо настоящего диспетчера.
type fakeQueue struct {
	orders []*domain.Order
	full   bool
}

func (f *fakeQueue) Enqueue(order *domain.Order, _ []*domain.OrderItem) bool {
	if f.full {
		return false
	}
	f.orders = append(f.orders, order)
	return true
}

func validCheckout() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		CustomerName:    "Asha",
		CustomerEmail:   "asha@example.com",
		ShippingAddress: "12 MG Road",
		City:            "Bengaluru",
		TotalAmount:     250,
		Items: []usecase.CheckoutItem{
			{ProductID: "p1", ProductName: "Ring", ProductPrice: 125, Quantity: 2, Subtotal: 250},
		},
	}
}

func TestCheckout_RequiresFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)

	in := validCheckout()
	in.CustomerEmail = ""

	_, err := svc.Checkout(context.Background(), in)
	if !usecase.IsInvalidInput(err) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestCheckout_SavesEnqueuesAndInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	store.data[cache.AdminOrdersKey] = "[]"
	inv := cache.NewInvalidator(store, nopLogger{})
	queue := &fakeQueue{}
	svc := usecase.NewOrderService(repo, store, inv, queue, nopLogger{}, time.Minute)

	repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order, items []*domain.OrderItem) error {
			if o.Status != domain.StatusPending {
				t.Fatalf("new order status = %q", o.Status)
			}
			if len(items) != 1 || items[0].ProductID != "p1" {
				t.Fatalf("items = %+v", items)
			}
			o.ID = "o1"
			return nil
		})

	order, err := svc.Checkout(context.Background(), validCheckout())
	if err != nil || order.ID != "o1" {
		t.Fatalf("order=%+v err=%v", order, err)
	}

	if store.has(cache.AdminOrdersKey) {
		t.Fatalf("orders cache must be invalidated after checkout")
	}
	if len(queue.orders) != 1 || queue.orders[0].ID != "o1" {
		t.Fatalf("order must be queued for shipment, got %+v", queue.orders)
	}
}

func TestCheckout_QueueFull_OrderStillCreated(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, &fakeQueue{full: true}, nopLogger{}, time.Minute)

	repo.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o *domain.Order, _ []*domain.OrderItem) error {
			o.ID = "o1"
			return nil
		})

	order, err := svc.Checkout(context.Background(), validCheckout())
	if err != nil || order == nil {
		t.Fatalf("checkout must succeed even with a full queue: %v", err)
	}
}

func TestGetOrder_MergesDuplicateItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)

	repo.EXPECT().GetByID(gomock.Any(), "o1").Return(&domain.Order{ID: "o1"}, nil)
	repo.EXPECT().ItemsByOrder(gomock.Any(), "o1").Return([]*domain.OrderItem{
		{ProductID: "p1", Quantity: 1, Subtotal: 100},
		{ProductID: "p2", Quantity: 1, Subtotal: 50},
		{ProductID: "p1", Quantity: 2, Subtotal: 200},
	}, nil)

	details, err := svc.GetOrder(context.Background(), "o1")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if len(details.Items) != 2 {
		t.Fatalf("items = %d, want 2 after merge", len(details.Items))
	}
	if details.Items[0].Quantity != 3 || details.Items[0].Subtotal != 300 {
		t.Fatalf("merged item = %+v", details.Items[0])
	}
}

func TestStatsByEmail_ExcludesCancelledFromTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)

	repo.EXPECT().ListByEmail(gomock.Any(), "asha@example.com").Return([]*domain.Order{
		{Status: domain.StatusDelivered, TotalAmount: 100},
		{Status: domain.StatusPending, TotalAmount: 40},
		{Status: domain.StatusCancelled, TotalAmount: 500},
		{Status: domain.StatusOutForDelivery, TotalAmount: 60},
	}, nil)

	stats, err := svc.StatsByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("StatsByEmail: %v", err)
	}
	if stats.TotalOrders != 4 || stats.DeliveredOrders != 1 || stats.CancelledOrders != 1 || stats.ShippedOrders != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.TotalSpent != 200 {
		t.Fatalf("total spent = %v, want 200 (cancelled excluded)", stats.TotalSpent)
	}
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)

	_, err := svc.UpdateOrderStatus(context.Background(), "o1", "teleported")
	if !usecase.IsInvalidInput(err) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestUpdateOrderStatus_UpdatesAndInvalidates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	store.data[cache.AdminOrdersKey] = "[]"
	store.data[cache.AdminOrderKey("o1")] = "{}"
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)

	repo.EXPECT().UpdateStatus(gomock.Any(), "o1", domain.StatusShipped).Return(nil)
	repo.EXPECT().GetByID(gomock.Any(), "o1").
		Return(&domain.Order{ID: "o1", Status: domain.StatusShipped}, nil)

	order, err := svc.UpdateOrderStatus(context.Background(), "o1", "shipped")
	if err != nil || order.Status != domain.StatusShipped {
		t.Fatalf("order=%+v err=%v", order, err)
	}
	if store.has(cache.AdminOrdersKey) || store.has(cache.AdminOrderKey("o1")) {
		t.Fatalf("order caches must be invalidated")
	}
}

func TestAdminGetOrder_NotFoundCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)
	ctx := context.Background()

	repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, domain.ErrNotFound).Times(1)

	for i := 0; i < 2; i++ {
		details, err := svc.AdminGetOrder(ctx, "ghost")
		if err != nil || details != nil {
			t.Fatalf("read %d: details=%+v err=%v", i, details, err)
		}
	}
}

func TestDeleteOrder_RepoErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	store := newMemStore()
	store.data[cache.AdminOrdersKey] = "[]"
	inv := cache.NewInvalidator(store, nopLogger{})
	svc := usecase.NewOrderService(repo, store, inv, nil, nopLogger{}, time.Minute)

	wantErr := errors.New("db down")
	repo.EXPECT().Delete(gomock.Any(), "o1").Return(wantErr)

	if err := svc.DeleteOrder(context.Background(), "o1"); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	// Кэш не трогаем, пока мутация не зафиксирована.
	if !store.has(cache.AdminOrdersKey) {
		t.Fatalf("cache must not be invalidated on failed delete")
	}
}

func TestMergeItems_PreservesFirstSeenOrder(t *testing.T) {
	items := []*domain.OrderItem{
		{ProductID: "b", Quantity: 1, Subtotal: 10},
		{ProductID: "a", Quantity: 1, Subtotal: 20},
		{ProductID: "b", Quantity: 3, Subtotal: 30},
	}

	merged := usecase.MergeItems(items)
	if len(merged) != 2 {
		t.Fatalf("merged = %d items, want 2", len(merged))
	}
	if merged[0].ProductID != "b" || merged[0].Quantity != 4 || merged[0].Subtotal != 40 {
		t.Fatalf("merged[0] = %+v", merged[0])
	}
	if merged[1].ProductID != "a" {
		t.Fatalf("merged[1] = %+v", merged[1])
	}
	// Исходный срез не мутируется.
	if items[0].Quantity != 1 {
		t.Fatalf("source items must not be modified")
	}
}
