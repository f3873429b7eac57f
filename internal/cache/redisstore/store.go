package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/redis/go-redis/v9"
)

// Проверка, что Store удовлетворяет порту CacheStore.
var _ ports.CacheStore = (*Store)(nil)

// Store — реализация CacheStore на Redis (go-redis v9).
type Store struct {
	client *redis.Client
}

// New — подключается к Redis и проверяет соединение (fail-fast).
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Store{client: client}, nil
}

// NewFromClient — обёртка над готовым клиентом (для тестов и переиспользования пула).
func NewFromClient(client *redis.Client) *Store { return &Store{client: client} }

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *Store) SetEx(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.SetEx(ctx, key, value, ttl).Err()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Keys — перечисление по шаблону через SCAN, чтобы не блокировать Redis
// командой KEYS на больших keyspace.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *Store) Close() error { return s.client.Close() }
