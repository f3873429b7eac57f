package usecase_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports/mocks"
	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
	"github.com/Gunvolt24/shop_backend/internal/usecase"
	"github.com/golang/mock/gomock"
)

// fakeCreator — клиент Shiprocket с заданным числом отказов перед успехом.
type fakeCreator struct {
	failures int32
	calls    int32
	lastReq  shiprocket.CreateOrderRequest
	done     chan struct{}
}

func (f *fakeCreator) CreateAdhocOrder(_ context.Context, req shiprocket.CreateOrderRequest) (*shiprocket.CreateOrderResponse, error) {
	n := atomic.AddInt32(&f.calls, 1)
	f.lastReq = req
	if n <= atomic.LoadInt32(&f.failures) {
		return nil, errors.New("api down")
	}
	if f.done != nil {
		close(f.done)
	}
	return &shiprocket.CreateOrderResponse{
		OrderID:        "777",
		ChannelOrderID: "SR-777",
	}, nil
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:              "o1",
		CustomerName:    "Asha",
		CustomerEmail:   "asha@example.com",
		ShippingAddress: "12 MG Road",
		TotalAmount:     250,
		Status:          domain.StatusPending,
	}
}

func dispatcherConfig() usecase.DispatcherConfig {
	return usecase.DispatcherConfig{
		PickupLocation: "home 2",
		QueueSize:      4,
		MaxAttempts:    3,
		RetryInitial:   time.Millisecond,
		RetryMax:       5 * time.Millisecond,
	}
}

func TestDispatcher_PushesOrderAndRecordsIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	creator := &fakeCreator{done: make(chan struct{})}
	recorded := make(chan struct{})
	synced := int32(0)

	repo.EXPECT().SetShiprocketIDs(gomock.Any(), "o1", "777", "SR-777").
		DoAndReturn(func(context.Context, string, string, string) error {
			close(recorded)
			return nil
		})

	d := usecase.NewShipmentDispatcher(dispatcherConfig(), creator, repo, nopLogger{},
		func(context.Context) { atomic.AddInt32(&synced, 1) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	items := []*domain.OrderItem{
		{ProductID: "p1", ProductName: "Ring", ProductPrice: 125, Quantity: 1, Subtotal: 125},
		{ProductID: "p1", ProductName: "Ring", ProductPrice: 125, Quantity: 1, Subtotal: 125},
	}
	if !d.Enqueue(testOrder(), items) {
		t.Fatalf("enqueue must succeed")
	}

	select {
	case <-recorded:
	case <-time.After(2 * time.Second):
		t.Fatalf("shiprocket ids were not recorded")
	}

	// Дубли SKU слиты в одну позицию запроса.
	if len(creator.lastReq.OrderItems) != 1 || creator.lastReq.OrderItems[0].Units != 2 {
		t.Fatalf("order items = %+v", creator.lastReq.OrderItems)
	}
	if creator.lastReq.PickupLocation != "home 2" || creator.lastReq.PaymentMethod != "Prepaid" {
		t.Fatalf("request = %+v", creator.lastReq)
	}
	if atomic.LoadInt32(&synced) == 0 {
		t.Fatalf("successful push must trigger immediate status sync")
	}
}

func TestDispatcher_RetriesUntilSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	creator := &fakeCreator{failures: 2, done: make(chan struct{})}
	repo.EXPECT().SetShiprocketIDs(gomock.Any(), "o1", "777", "SR-777").Return(nil)

	d := usecase.NewShipmentDispatcher(dispatcherConfig(), creator, repo, nopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	d.Enqueue(testOrder(), nil)

	select {
	case <-creator.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("push did not succeed after retries")
	}
	if got := atomic.LoadInt32(&creator.calls); got != 3 {
		t.Fatalf("attempts = %d, want 3", got)
	}
}

func TestDispatcher_GivesUpAfterMaxAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	// SetShiprocketIDs не ожидается: все попытки провалились.

	creator := &fakeCreator{failures: 100}
	d := usecase.NewShipmentDispatcher(dispatcherConfig(), creator, repo, nopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Run(ctx) }()

	d.Enqueue(testOrder(), nil)

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&creator.calls) < 3 {
		select {
		case <-deadline:
			t.Fatalf("attempts = %d, want 3", atomic.LoadInt32(&creator.calls))
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Дожидаемся, что четвёртой попытки не будет.
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&creator.calls); got != 3 {
		t.Fatalf("attempts = %d, want exactly 3", got)
	}
}

func TestDispatcher_EnqueueFullQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)

	cfg := dispatcherConfig()
	cfg.QueueSize = 1
	d := usecase.NewShipmentDispatcher(cfg, &fakeCreator{}, repo, nopLogger{}, nil)

	// Диспетчер не запущен — очередь никем не разбирается.
	if !d.Enqueue(testOrder(), nil) {
		t.Fatalf("first enqueue must fit the queue")
	}
	if d.Enqueue(testOrder(), nil) {
		t.Fatalf("second enqueue must be rejected")
	}
}

func TestDispatcher_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	d := usecase.NewShipmentDispatcher(dispatcherConfig(), &fakeCreator{}, repo, nopLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run should return context error, got %v", err)
	}
}
