package shiprocket

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// refreshMargin — запас до истечения токена, при котором уже идём за новым.
const refreshMargin = 5 * time.Second

// tokenSource — кэш bearer-токена с ленивым обновлением.
// Обновление идёт через singleflight: одновременные промахи
// дают один login-запрос, остальные ждут его результат.
type tokenSource struct {
	login func(ctx context.Context) (string, error)
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time

	sf singleflight.Group
}

func newTokenSource(ttl time.Duration, login func(ctx context.Context) (string, error)) *tokenSource {
	if ttl <= 0 {
		ttl = 9 * 24 * time.Hour
	}
	return &tokenSource{login: login, ttl: ttl, now: time.Now}
}

// Token — вернуть действующий токен, при необходимости обновив его.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	if tok, ok := ts.cached(); ok {
		return tok, nil
	}

	v, err, _ := ts.sf.Do("login", func() (any, error) {
		// Пока ждали очередь singleflight, токен мог обновиться.
		if tok, ok := ts.cached(); ok {
			return tok, nil
		}

		tok, err := ts.login(ctx)
		if err != nil {
			return "", err
		}

		ts.mu.Lock()
		ts.token = tok
		ts.expiresAt = ts.now().Add(ts.ttl)
		ts.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate — сбросить кэш (например, после 401 на рабочем запросе).
func (ts *tokenSource) Invalidate() {
	ts.mu.Lock()
	ts.token = ""
	ts.expiresAt = time.Time{}
	ts.mu.Unlock()
}

func (ts *tokenSource) cached() (string, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token != "" && ts.expiresAt.After(ts.now().Add(refreshMargin)) {
		return ts.token, true
	}
	return "", false
}
