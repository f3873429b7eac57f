package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
	"github.com/Gunvolt24/shop_backend/pkg/metrics"
)

// shipmentCreator — минимальный контракт над клиентом Shiprocket,
// чтобы легко подменять его фейками в тестах.
type shipmentCreator interface {
	CreateAdhocOrder(ctx context.Context, req shiprocket.CreateOrderRequest) (*shiprocket.CreateOrderResponse, error)
}

// DispatcherConfig — параметры фоновой отправки заказов.
type DispatcherConfig struct {
	PickupLocation string
	QueueSize      int
	MaxAttempts    int
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

type dispatchJob struct {
	order *domain.Order
	items []*domain.OrderItem
}

// ShipmentDispatcher — выделенная фоновая задача: пуш заказов в Shiprocket,
// развязанный с циклом запрос/ответ. Очередь ограничена; неудачные попытки
// повторяются с экспоненциальным backoff и equal-jitter, после исчерпания
// попыток заказ бросается с ошибкой в лог (локально он уже сохранён,
// внешние id доедут при ручном повторе или останутся пустыми).
type ShipmentDispatcher struct {
	client  shipmentCreator
	orders  ports.OrderRepository
	log     ports.Logger
	syncNow func(ctx context.Context)

	pickupLocation string
	maxAttempts    int
	retryInitial   time.Duration
	retryMax       time.Duration

	queue      chan dispatchJob
	jitterRand *rand.Rand
}

// NewShipmentDispatcher — конструктор. syncNow опционален: если задан,
// после успешного пуша сразу запускается внеочередная сверка статусов.
func NewShipmentDispatcher(
	cfg DispatcherConfig,
	client shipmentCreator,
	orders ports.OrderRepository,
	log ports.Logger,
	syncNow func(ctx context.Context),
) *ShipmentDispatcher {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	retryInitial := cfg.RetryInitial
	if retryInitial <= 0 {
		retryInitial = 2 * time.Second
	}
	retryMax := cfg.RetryMax
	if retryMax <= 0 {
		retryMax = 2 * time.Minute
	}

	return &ShipmentDispatcher{
		client:         client,
		orders:         orders,
		log:            log,
		syncNow:        syncNow,
		pickupLocation: cfg.PickupLocation,
		maxAttempts:    maxAttempts,
		retryInitial:   retryInitial,
		retryMax:       retryMax,
		queue:          make(chan dispatchJob, queueSize),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Enqueue — поставить заказ в очередь отправки; false, если очередь переполнена.
func (d *ShipmentDispatcher) Enqueue(order *domain.Order, items []*domain.OrderItem) bool {
	select {
	case d.queue <- dispatchJob{order: order, items: items}:
		return true
	default:
		metrics.DispatchDropped.Inc()
		return false
	}
}

// Run — рабочий цикл: берём заказ из очереди и пушим с повторами.
func (d *ShipmentDispatcher) Run(ctx context.Context) error {
	d.log.Infof(ctx, "shipment dispatcher started queue_cap=%d", cap(d.queue))

	for {
		select {
		case <-ctx.Done():
			d.log.Infof(ctx, "shipment dispatcher stopped")
			return ctx.Err()
		case job := <-d.queue:
			d.dispatch(ctx, job)
		}
	}
}

// dispatch — пуш одного заказа с повторами.
func (d *ShipmentDispatcher) dispatch(ctx context.Context, job dispatchJob) {
	req := d.buildRequest(job.order, job.items)
	retry := d.retryInitial

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		resp, err := d.client.CreateAdhocOrder(ctx, req)
		if err == nil {
			d.recordIDs(ctx, job.order, resp)
			return
		}

		if ctx.Err() != nil {
			return
		}

		if attempt == d.maxAttempts {
			metrics.DispatchDropped.Inc()
			d.log.Errorf(ctx, "shipment push failed order=%s attempts=%d err=%v (giving up)",
				job.order.ID, attempt, err)
			return
		}

		metrics.DispatchRetries.Inc()
		sleep := d.withJitterEqual(retry)
		d.log.Warnf(ctx, "shipment push failed order=%s attempt=%d err=%v (retry in %s)",
			job.order.ID, attempt, err, sleep)
		if !sleepCtx(ctx, sleep) {
			return
		}
		retry = d.nextBackoff(retry)
	}
}

// recordIDs — сохранить внешние идентификаторы и запросить немедленную сверку.
func (d *ShipmentDispatcher) recordIDs(ctx context.Context, order *domain.Order, resp *shiprocket.CreateOrderResponse) {
	if resp == nil || resp.OrderID.String() == "" {
		d.log.Warnf(ctx, "shipment push order=%s: empty response ids", order.ID)
		return
	}

	if err := d.orders.SetShiprocketIDs(ctx, order.ID, resp.OrderID.String(), resp.ChannelOrderID.String()); err != nil {
		d.log.Errorf(ctx, "set shiprocket ids failed order=%s err=%v", order.ID, err)
		return
	}

	d.log.Infof(ctx, "order pushed to shiprocket order=%s sr_order=%s channel=%s",
		order.ID, resp.OrderID.String(), resp.ChannelOrderID.String())

	if d.syncNow != nil {
		d.syncNow(ctx)
	}
}

// buildRequest — adhoc-payload Shiprocket; дубли SKU сливаются заранее,
// иначе внешний сервис отклонит заказ.
func (d *ShipmentDispatcher) buildRequest(order *domain.Order, items []*domain.OrderItem) shiprocket.CreateOrderRequest {
	merged := MergeItems(items)
	srItems := make([]shiprocket.OrderItem, 0, len(merged))
	for _, it := range merged {
		srItems = append(srItems, shiprocket.OrderItem{
			Name:         it.ProductName,
			SKU:          it.ProductID,
			Units:        it.Quantity,
			SellingPrice: it.ProductPrice,
		})
	}

	orderDate := order.CreatedAt
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	return shiprocket.CreateOrderRequest{
		OrderID:           order.ID,
		OrderDate:         orderDate.UTC().Format("2006-01-02"),
		PickupLocation:    d.pickupLocation,
		BillingCustomer:   order.CustomerName,
		BillingLastName:   order.CustomerLastName,
		BillingAddress:    order.ShippingAddress,
		BillingCity:       order.City,
		BillingPincode:    order.PostalCode,
		BillingState:      order.City,
		BillingCountry:    order.Country,
		BillingEmail:      order.CustomerEmail,
		BillingPhone:      order.CustomerPhone,
		ShippingIsBilling: true,
		OrderItems:        srItems,
		PaymentMethod:     "Prepaid",
		SubTotal:          order.TotalAmount,
		Length:            10,
		Breadth:           10,
		Height:            10,
		Weight:            0.5,
	}
}

// sleepCtx — ждёт d или останавливается по контексту.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

// nextBackoff — следующее время ожидания повтора с учётом retryMax.
func (d *ShipmentDispatcher) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > d.retryMax {
		return d.retryMax
	}
	return current
}

// withJitterEqual — умеренная случайность: половина задержки фиксирована,
// вторая половина — случайная.
func (d *ShipmentDispatcher) withJitterEqual(dur time.Duration) time.Duration {
	if dur <= 0 {
		return 0
	}
	half := dur / 2
	jitter := time.Duration(d.jitterRand.Int63n(int64(dur-half) + 1))
	return half + jitter
}
