package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames sind die indonesischen Monatsnamen, Index 0 = Januari.
var monthNames = []string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var monthsByName = func() map[string]time.Month {
	m := make(map[string]time.Month, len(monthNames))
	for i, name := range monthNames {
		m[strings.ToLower(name)] = time.Month(i + 1)
	}
	return m
}()

// textualDateExpr matcht "21 Januari 2026", optional mit Uhrzeit dahinter.
var textualDateExpr = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})(?:\s+(\d{1,2}):(\d{2}))?`)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseNewsDate normalisiert die im Portal vorkommenden Datumsformate:
// ISO-8601-Varianten sowie das indonesische Textformat "21 Januari 2026"
// (auch mit Wochentags-Präfix wie "Selasa, 21 Januari 2026 10:00").
func ParseNewsDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	if m := textualDateExpr.FindStringSubmatch(s); m != nil {
		month, ok := monthsByName[strings.ToLower(m[2])]
		if ok {
			day, _ := strconv.Atoi(m[1])
			year, _ := strconv.Atoi(m[3])
			hour, _ := strconv.Atoi(m[4])
			minute, _ := strconv.Atoi(m[5])
			return time.Date(year, month, day, hour, minute, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", s)
}

// FormatNewsDate rendert ein Datum im Portal-Format "2 Januari 2006".
func FormatNewsDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[int(t.Month())-1], t.Year())
}
