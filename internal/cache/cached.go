package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/pkg/metrics"
)

// DefaultTTL — TTL по умолчанию для read-through записей.
const DefaultTTL = 5 * time.Minute

// Producer — источник данных при промахе кэша (обычно запрос к БД).
type Producer[T any] func(ctx context.Context) (T, error)

// Cached — read-through чтение: сначала кэш, при промахе — producer с записью результата.
// Ошибки кэша не доходят до вызывающего: при недоступном Redis читаем напрямую из
// producer и пропускаем запись. Ошибка самого producer возвращается как есть.
// Пустой результат ("не найдено") кэшируется наравне с любым другим значением.
func Cached[T any](
	ctx context.Context,
	store ports.CacheStore,
	log ports.Logger,
	key string,
	ttl time.Duration,
	producer Producer[T],
) (T, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	raw, found, getErr := store.Get(ctx, key)
	if getErr != nil {
		// Кэш недоступен — фолбэк на источник, без записи в кэш.
		metrics.CacheOps.WithLabelValues("fallback").Inc()
		log.Warnf(ctx, "cache get failed key=%s err=%v (fallback to source)", key, getErr)
		return producer(ctx)
	}

	if found {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			metrics.CacheOps.WithLabelValues("hit").Inc()
			return cached, nil
		}
		// Битая запись — считаем промахом и перезапишем ниже.
		log.Warnf(ctx, "cache entry corrupted key=%s (refetching)", key)
	}

	metrics.CacheOps.WithLabelValues("miss").Inc()
	value, err := producer(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if data, mErr := json.Marshal(value); mErr != nil {
		log.Warnf(ctx, "cache marshal failed key=%s err=%v", key, mErr)
	} else if setErr := store.SetEx(ctx, key, string(data), ttl); setErr != nil {
		metrics.CacheOps.WithLabelValues("fallback").Inc()
		log.Warnf(ctx, "cache set failed key=%s err=%v", key, setErr)
	}

	return value, nil
}
