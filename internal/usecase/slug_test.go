package usecase_test

import (
	"testing"

	"github.com/Gunvolt24/shop_backend/internal/usecase"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Gold Ring", "gold-ring"},
		{"  Silver Moon Ring!  ", "silver-moon-ring"},
		{"Éclair & Co.", "clair-co"},
		{"a  -  b", "a-b"},
		{"UPPER", "upper"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := usecase.Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
