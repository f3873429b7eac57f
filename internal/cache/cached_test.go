package cache_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Gunvolt24/shop_backend/internal/cache"
	"github.com/Gunvolt24/shop_backend/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// fakeStore — кэш в памяти с шаблонами-префиксами и настраиваемыми ошибками.
type fakeStore struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	keyErr error
	delErr error

	setCalls int
	delCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeStore) SetEx(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delCalls++
	if f.delErr != nil {
		return f.delErr
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeStore) Keys(_ context.Context, pattern string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keyErr != nil {
		return nil, f.keyErr
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var out []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func TestCached_MissThenHit(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	calls := 0

	producer := func(context.Context) (*domain.Category, error) {
		calls++
		return &domain.Category{ID: "c1", Name: "Rings"}, nil
	}

	got, err := cache.Cached(ctx, store, nopLogger{}, "admin:categories", time.Minute, producer)
	if err != nil || got == nil || got.ID != "c1" {
		t.Fatalf("miss: got=%+v err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("producer calls = %d, want 1", calls)
	}
	if _, ok := store.data["admin:categories"]; !ok {
		t.Fatalf("value was not written to cache")
	}

	// Повторное чтение — из кэша, producer не дёргается.
	got, err = cache.Cached(ctx, store, nopLogger{}, "admin:categories", time.Minute, producer)
	if err != nil || got == nil || got.Name != "Rings" {
		t.Fatalf("hit: got=%+v err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("producer calls after hit = %d, want 1", calls)
	}
}

func TestCached_GetError_FallsBackToSource(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("redis down")
	calls := 0

	got, err := cache.Cached(context.Background(), store, nopLogger{}, "k", time.Minute,
		func(context.Context) (string, error) {
			calls++
			return "from-db", nil
		})
	if err != nil || got != "from-db" {
		t.Fatalf("got=%q err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("producer calls = %d, want 1", calls)
	}
	if store.setCalls != 0 {
		t.Fatalf("must not write to a broken cache")
	}
}

func TestCached_SetError_StillReturnsValue(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("redis down")

	got, err := cache.Cached(context.Background(), store, nopLogger{}, "k", time.Minute,
		func(context.Context) (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Fatalf("got=%d err=%v", got, err)
	}
}

func TestCached_ProducerError_NotCached(t *testing.T) {
	store := newFakeStore()
	wantErr := errors.New("db failed")

	_, err := cache.Cached(context.Background(), store, nopLogger{}, "k", time.Minute,
		func(context.Context) (string, error) { return "", wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if len(store.data) != 0 {
		t.Fatalf("error result must not be cached")
	}
}

func TestCached_NegativeResultIsCached(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	calls := 0

	producer := func(context.Context) (*domain.Product, error) {
		calls++
		return nil, nil // «не найдено» — валидный результат
	}

	got, err := cache.Cached(ctx, store, nopLogger{}, "content:product:ghost", time.Minute, producer)
	if err != nil || got != nil {
		t.Fatalf("got=%+v err=%v", got, err)
	}

	got, err = cache.Cached(ctx, store, nopLogger{}, "content:product:ghost", time.Minute, producer)
	if err != nil || got != nil {
		t.Fatalf("second read: got=%+v err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("negative result must be served from cache, producer calls = %d", calls)
	}
}

func TestCached_CorruptedEntry_Refetches(t *testing.T) {
	store := newFakeStore()
	store.data["k"] = "{not json"
	calls := 0

	got, err := cache.Cached(context.Background(), store, nopLogger{}, "k", time.Minute,
		func(context.Context) (*domain.Category, error) {
			calls++
			return &domain.Category{ID: "c1"}, nil
		})
	if err != nil || got == nil || got.ID != "c1" {
		t.Fatalf("got=%+v err=%v", got, err)
	}
	if calls != 1 {
		t.Fatalf("corrupted entry must trigger refetch")
	}
	if store.data["k"] == "{not json" {
		t.Fatalf("corrupted entry must be overwritten")
	}
}

func TestCached_ZeroTTL_UsesDefault(t *testing.T) {
	store := newFakeStore()

	_, err := cache.Cached(context.Background(), store, nopLogger{}, "k", 0,
		func(context.Context) (string, error) { return "v", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.data["k"]; !ok {
		t.Fatalf("value must be cached with default ttl")
	}
}
