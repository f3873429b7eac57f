package usecase

import (
	"regexp"
	"strings"
)

var (
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugNonWord  = regexp.MustCompile(`[^\w\-]+`)
	slugDashRuns = regexp.MustCompile(`--+`)
)

// Slugify — URL-образный идентификатор из произвольного названия.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugNonWord.ReplaceAllString(s, "")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return s
}
