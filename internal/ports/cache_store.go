package ports

import (
	"context"
	"time"
)

// CacheStore — общий кэш (Redis): ключ/значение, TTL на ключ,
// перечисление ключей по шаблону.
// Требования к реализации: отсутствие ключа в Get — не ошибка, а (value="", ok=false);
// Del по отсутствующим ключам — no-op.
type CacheStore interface {
	// Get — вернуть значение по ключу; (value, true) при попадании, ("", false) при промахе.
	Get(ctx context.Context, key string) (string, bool, error)

	// SetEx — записать значение с TTL.
	SetEx(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del — удалить ключи (идемпотентно).
	Del(ctx context.Context, keys ...string) error

	// Keys — перечислить ключи по шаблону вида "admin:products*".
	Keys(ctx context.Context, pattern string) ([]string, error)
}
