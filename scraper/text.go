package scraper

import (
	"regexp"
	"strings"
)

var (
	tagExpr        = regexp.MustCompile(`<[^>]+>`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
)

// CleanText entfernt HTML-Tags und kollabiert Whitespace.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = tagExpr.ReplaceAllString(s, "")
	s = whitespaceExpr.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

// Summarize kürzt bereinigten Text auf maxRunes und hängt eine Ellipse an.
func Summarize(s string, maxRunes int) string {
	s = CleanText(s)
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
