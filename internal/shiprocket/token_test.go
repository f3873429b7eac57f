package shiprocket

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestTokenSource_CachesToken(t *testing.T) {
	var calls int32
	ts := newTokenSource(time.Hour, func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "tok-1", nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		tok, err := ts.Token(ctx)
		if err != nil || tok != "tok-1" {
			t.Fatalf("Token() = %q, %v", tok, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("login calls = %d, want 1", got)
	}
}

func TestTokenSource_RefreshesNearExpiry(t *testing.T) {
	var calls int32
	ts := newTokenSource(10*time.Second, func(context.Context) (string, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "tok-1", nil
		}
		return "tok-2", nil
	})

	current := time.Now()
	ts.now = func() time.Time { return current }

	ctx := context.Background()
	if tok, _ := ts.Token(ctx); tok != "tok-1" {
		t.Fatalf("first token = %q", tok)
	}

	// До истечения больше запаса — токен ещё валиден.
	current = current.Add(4 * time.Second)
	if tok, _ := ts.Token(ctx); tok != "tok-1" {
		t.Fatalf("token must still be cached, got %q", tok)
	}

	// Осталось меньше запаса — идём за новым.
	current = current.Add(2 * time.Second)
	if tok, _ := ts.Token(ctx); tok != "tok-2" {
		t.Fatalf("token must be refreshed near expiry, got %q", tok)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("login calls = %d, want 2", got)
	}
}

func TestTokenSource_InvalidateForcesRelogin(t *testing.T) {
	var calls int32
	ts := newTokenSource(time.Hour, func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "tok", nil
	})

	ctx := context.Background()
	if _, err := ts.Token(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ts.Invalidate()
	if _, err := ts.Token(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("login calls = %d, want 2", got)
	}
}

func TestTokenSource_LoginErrorPropagates(t *testing.T) {
	wantErr := errors.New("bad credentials")
	ts := newTokenSource(time.Hour, func(context.Context) (string, error) {
		return "", wantErr
	})

	if _, err := ts.Token(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestTokenSource_ConcurrentMiss_SingleLogin(t *testing.T) {
	var calls int32
	ts := newTokenSource(time.Hour, func(context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return "tok", nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := ts.Token(context.Background())
			if err != nil || tok != "tok" {
				t.Errorf("Token() = %q, %v", tok, err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("concurrent misses must collapse into one login, got %d", got)
	}
}
