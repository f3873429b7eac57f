package cache

import (
	"context"

	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/Gunvolt24/shop_backend/pkg/metrics"
)

// Group — логическая группа кэшируемых данных с общими триггерами инвалидации.
type Group string

const (
	GroupProducts    Group = "products"
	GroupCategories  Group = "categories"
	GroupOrders      Group = "orders"
	GroupReviews     Group = "reviews"
	GroupSocialPosts Group = "social-posts"
)

// groupRule — что именно чистим для группы: точные ключи, шаблоны
// и функция ключа по id (если группа кэшируется посущностно).
type groupRule struct {
	keys     []string
	patterns []string
	idKey    func(id string) string
}

// rules — явная таблица «группа → ключи/шаблоны».
// Каскады объявлены здесь же:
//   - товары чистят и админский, и публичный вид (одни данные, разная форма);
//   - категории дополнительно чистят публичные товарные ключи, потому что
//     публичные товары несут денормализованные данные категории;
//   - заказы каскадов не имеют.
var rules = map[Group]groupRule{
	GroupProducts: {
		patterns: []string{"admin:products*", "content:products*", "content:product:*"},
		idKey:    AdminProductKey,
	},
	GroupCategories: {
		keys:     []string{AdminCategoriesKey, ContentCategoriesKey},
		patterns: []string{"content:products*", "content:product:*"},
	},
	GroupOrders: {
		keys:  []string{AdminOrdersKey},
		idKey: AdminOrderKey,
	},
	GroupReviews: {
		patterns: []string{"reviews*"},
	},
	GroupSocialPosts: {
		keys: []string{SocialPostsKey},
	},
}

// Invalidator — снимает кэш группы после успешной мутации её сущностей.
// Вызывается после коммита записи и до ответа клиенту; согласованность кэша и БД —
// eventually consistent в пределах TTL. Ошибки кэша логируются и не всплывают:
// неудалённая запись самоизлечится по TTL.
type Invalidator struct {
	store ports.CacheStore
	log   ports.Logger
}

func NewInvalidator(store ports.CacheStore, log ports.Logger) *Invalidator {
	return &Invalidator{store: store, log: log}
}

// Invalidate — удаляет все ключи группы; id опционален и добавляет посущностный ключ.
// Удаление отсутствующих ключей — no-op, повторный вызов безопасен.
func (inv *Invalidator) Invalidate(ctx context.Context, group Group, ids ...string) {
	rule, ok := rules[group]
	if !ok {
		inv.log.Warnf(ctx, "cache invalidate: unknown group=%s", group)
		return
	}

	keys := append([]string(nil), rule.keys...)
	if rule.idKey != nil {
		for _, id := range ids {
			if id != "" {
				keys = append(keys, rule.idKey(id))
			}
		}
	}

	for _, pattern := range rule.patterns {
		matched, err := inv.store.Keys(ctx, pattern)
		if err != nil {
			inv.log.Warnf(ctx, "cache keys failed group=%s pattern=%s err=%v", group, pattern, err)
			continue
		}
		keys = append(keys, matched...)
	}

	if len(keys) == 0 {
		return
	}

	if err := inv.store.Del(ctx, keys...); err != nil {
		inv.log.Warnf(ctx, "cache del failed group=%s keys=%d err=%v", group, len(keys), err)
		return
	}
	metrics.CacheInvalidations.WithLabelValues(string(group)).Inc()
}
