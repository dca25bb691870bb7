package services

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"papua-newsroom/models"
	"papua-newsroom/scraper"
	"papua-newsroom/store"
)

// allCategories ist der Sentinel des Kategorie-Filters im Frontend.
const allCategories = "Semua"

// NewsItem ist die brand-agnostische Sicht auf einen veröffentlichten Artikel.
type NewsItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Image       string     `json:"image,omitempty"`
	Category    string     `json:"category,omitempty"`
	Region      string     `json:"region"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Date        string     `json:"date"`
	URL         string     `json:"url,omitempty"`
}

// Pagination beschreibt die Seitenlage eines Listen-Ergebnisses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize,omitempty"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ListQuery sind die Parameter der öffentlichen News-Liste.
type ListQuery struct {
	Region   string
	Category string
	Search   string
	Page     int
	PageSize int
}

// ReaderService bedient die öffentliche Lese-Seite. Er arbeitet nur auf der
// PublicArticle-Projektion und mutiert den Redaktions-Store nie.
type ReaderService struct {
	Store  store.Store
	Logger *zap.Logger
}

// NewReaderService erstellt eine neue Instanz.
func NewReaderService(st store.Store, logger *zap.Logger) *ReaderService {
	return &ReaderService{Store: st, Logger: logger}
}

// List filtert, sortiert und paginiert die veröffentlichten Artikel einer
// Region. Sortiert wird absteigend nach normalisiertem Publikationsdatum
// (Kalendertag, Uhrzeit irrelevant); ohne pageSize kommt alles als eine Seite.
func (r *ReaderService) List(q ListQuery) ([]NewsItem, Pagination, error) {
	if strings.TrimSpace(q.Region) == "" {
		return nil, Pagination{}, ErrMissingRegion
	}

	articles, err := r.Store.ListPublicArticles(q.Region)
	if err != nil {
		return nil, Pagination{}, err
	}

	var filtered []models.PublicArticle
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, a := range articles {
		if q.Category != "" && q.Category != allCategories && a.Category != q.Category {
			continue
		}
		if needle != "" && !matchesSearch(a, needle) {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return sortKey(filtered[i]).After(sortKey(filtered[j]))
	})

	total := len(filtered)
	pagination := Pagination{Page: q.Page, PageSize: q.PageSize, TotalItems: total, TotalPages: 1}
	if q.PageSize > 0 {
		pagination.TotalPages = (total + q.PageSize - 1) / q.PageSize
		start := q.Page * q.PageSize
		if start >= total {
			filtered = filtered[:0]
		} else {
			end := start + q.PageSize
			if end > total {
				end = total
			}
			filtered = filtered[start:end]
		}
	}

	items := make([]NewsItem, 0, len(filtered))
	for _, a := range filtered {
		items = append(items, toNewsItem(a))
	}
	return items, pagination, nil
}

// Get liefert einen einzelnen veröffentlichten Artikel.
func (r *ReaderService) Get(id string) (*NewsItem, error) {
	a, err := r.Store.FindPublicArticle(id)
	if err != nil {
		return nil, err
	}
	item := toNewsItem(*a)
	return &item, nil
}

func matchesSearch(a models.PublicArticle, needle string) bool {
	return strings.Contains(strings.ToLower(a.Title), needle) ||
		strings.Contains(strings.ToLower(a.Summary), needle) ||
		strings.Contains(strings.ToLower(a.Content), needle)
}

// sortKey normalisiert auf den Kalendertag: bevorzugt das Textdatum
// ("15 Januari 2025"), dann published_at, sonst created_at.
func sortKey(a models.PublicArticle) time.Time {
	if a.Date != "" {
		if t, err := scraper.ParseNewsDate(a.Date); err == nil {
			return t.Truncate(24 * time.Hour)
		}
	}
	if a.PublishedAt != nil {
		return a.PublishedAt.Truncate(24 * time.Hour)
	}
	return a.CreatedAt.Truncate(24 * time.Hour)
}

func toNewsItem(a models.PublicArticle) NewsItem {
	date := a.Date
	if date == "" && a.PublishedAt != nil {
		date = scraper.FormatNewsDate(*a.PublishedAt)
	}
	return NewsItem{
		ID:          a.ID,
		Title:       a.Title,
		Summary:     a.Summary,
		Image:       a.ImageURL,
		Category:    a.Category,
		Region:      a.Brand,
		PublishedAt: a.PublishedAt,
		Date:        date,
		URL:         a.URL,
	}
}
