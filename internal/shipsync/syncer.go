package shipsync

import (
	"context"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/domain"
	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/internal/shiprocket"
	"github.com/Gunvolt24/shop_backend/pkg/metrics"
)

// tracker — минимальный контракт над клиентом Shiprocket,
// чтобы легко подменять его фейками в тестах.
type tracker interface {
	TrackByOrderID(ctx context.Context, channelOrderID string) (shiprocket.TrackingResponse, error)
}

// Syncer — периодическая сверка статусов заказов с курьером.
// Работает независимо от HTTP-трафика; кэш не трогает — админский список
// заказов доживёт до конца TTL (согласованность в пределах TTL).
type Syncer struct {
	orders   ports.OrderRepository
	client   tracker
	log      ports.Logger
	interval time.Duration
}

func NewSyncer(orders ports.OrderRepository, client tracker, log ports.Logger, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	return &Syncer{orders: orders, client: client, log: log, interval: interval}
}

// Run — цикл по фиксированному интервалу до отмены контекста.
// Ошибки одного прогона не останавливают цикл.
func (s *Syncer) Run(ctx context.Context) error {
	s.log.Infof(ctx, "shiprocket sync started interval=%s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Infof(ctx, "shiprocket sync stopped")
			return ctx.Err()
		case <-ticker.C:
			s.SyncOnce(ctx)
		}
	}
}

// SyncOnce — один прогон сверки: для каждого заказа с внешним channel id
// запрашиваем трек, нормализуем последний статус и обновляем локальный
// только при изменении. Ошибка по одному заказу не прерывает остальные.
func (s *Syncer) SyncOnce(ctx context.Context) {
	orders, err := s.orders.ListSyncable(ctx)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("error").Inc()
		s.log.Errorf(ctx, "sync: list orders failed: %v", err)
		return
	}

	updated := 0
	for _, order := range orders {
		if changed, syncErr := s.syncOrder(ctx, order); syncErr != nil {
			s.log.Warnf(ctx, "sync: order=%s failed: %v", order.ID, syncErr)
		} else if changed {
			updated++
		}
	}

	metrics.SyncRuns.WithLabelValues("ok").Inc()
	s.log.Infof(ctx, "sync: completed orders=%d updated=%d", len(orders), updated)
}

// syncOrder — сверка одного заказа; true, если статус изменился.
func (s *Syncer) syncOrder(ctx context.Context, order *domain.Order) (bool, error) {
	tracking, err := s.client.TrackByOrderID(ctx, order.ShiprocketChannelID)
	if err != nil {
		return false, err
	}

	statusText, ok := tracking.LatestStatus(order.ShiprocketChannelID)
	if !ok {
		// Событий трека пока нет — не ошибка.
		return false, nil
	}

	normalized, ok := NormalizeStatus(statusText)
	if !ok {
		// Нераспознанный текст — оставляем заказ как есть.
		s.log.Infof(ctx, "sync: order=%s unrecognized status %q", order.ID, statusText)
		return false, nil
	}

	if normalized == order.Status {
		return false, nil
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, normalized); err != nil {
		return false, err
	}

	metrics.SyncOrdersUpdated.Inc()
	s.log.Infof(ctx, "sync: order=%s status %s -> %s", order.ID, order.Status, normalized)
	return true, nil
}
