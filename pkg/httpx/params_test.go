package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/shop_backend/pkg/httpx"
	"github.com/gin-gonic/gin"
)

// Утилита для создания *gin.Context с query-строкой
func ctxWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/?"+rawQuery, http.NoBody)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestClampInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"below_min", 0, 1, 10, 1},
		{"above_max", 11, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"equal_min", 1, 1, 10, 1},
		{"equal_max", 10, 1, 10, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.ClampInt(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("ClampInt(%d,%d,%d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestParsePageLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rawQuery     string
		defaultLimit int
		maxLimit     int
		wantPage     int
		wantLimit    int
	}{
		// дефолты
		{"no_query_uses_defaults", "", 20, 50, 1, 20},
		{"ok_both", "page=3&limit=25", 20, 50, 3, 25},
		{"ok_only_page", "page=2", 20, 50, 2, 20},
		{"ok_only_limit", "limit=5", 20, 50, 1, 5},

		// клампинг limit
		{"limit_zero_clamped_to_min", "limit=0", 20, 50, 1, 1},
		{"limit_negative_clamped_to_min", "limit=-5", 20, 50, 1, 1},
		{"limit_above_max_clamped", "limit=999", 20, 50, 1, 50},

		// нечисловые и невалидные значения
		{"limit_non_int_uses_default", "limit=foo", 20, 50, 1, 20},
		{"page_non_int_ignored", "page=bar", 20, 50, 1, 20},
		{"page_zero_ignored", "page=0&limit=10", 20, 50, 1, 10},
		{"page_negative_ignored", "page=-3&limit=10", 20, 50, 1, 10},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := ctxWithQuery(tt.rawQuery)
			page, limit := httpx.ParsePageLimit(c, tt.defaultLimit, tt.maxLimit)
			if page != tt.wantPage || limit != tt.wantLimit {
				t.Fatalf("got page=%d limit=%d, want %d/%d (query=%q)",
					page, limit, tt.wantPage, tt.wantLimit, tt.rawQuery)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawQuery string
		maxLimit int
		want     int
	}{
		{"absent_means_unlimited", "", 50, 0},
		{"ok", "limit=10", 50, 10},
		{"zero_means_unlimited", "limit=0", 50, 0},
		{"negative_means_unlimited", "limit=-7", 50, 0},
		{"above_max_clamped", "limit=999", 50, 50},
		{"non_int_means_unlimited", "limit=foo", 50, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := ctxWithQuery(tt.rawQuery)
			if got := httpx.ParseLimit(c, tt.maxLimit); got != tt.want {
				t.Fatalf("ParseLimit(%q, %d) = %d, want %d", tt.rawQuery, tt.maxLimit, got, tt.want)
			}
		})
	}
}
