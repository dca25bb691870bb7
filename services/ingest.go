package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"papua-newsroom/models"
	"papua-newsroom/scraper"
	"papua-newsroom/store"
)

// RunResult ist das Ergebnis eines Scrape-Laufs.
type RunResult struct {
	RunID       string           `json:"runId"`
	SourceID    string           `json:"sourceId,omitempty"`
	FetchedFrom string           `json:"fetchedFrom,omitempty"`
	Items       []models.Article `json:"items"`
	Count       int              `json:"count"`
}

// ScrapeService orchestriert die Ingestion: Items von den externen Quellen
// holen, defensiv normalisieren und als pending in den Store einfügen.
type ScrapeService struct {
	Store  store.Store
	Logger *zap.Logger

	Probe    *scraper.Probe
	HTML     *scraper.SeputarPapua
	Keywords []string
}

// NewScrapeService erstellt eine neue Instanz.
func NewScrapeService(st store.Store, logger *zap.Logger, probe *scraper.Probe, html *scraper.SeputarPapua, keywords []string) *ScrapeService {
	return &ScrapeService{Store: st, Logger: logger, Probe: probe, HTML: html, Keywords: keywords}
}

// Run ist der admin-getriggerte Lauf gegen die JSON-Quelle. Liefert keiner
// der Kandidaten-Endpunkte JSON, kommt ein wohlgeformtes leeres Ergebnis
// zusammen mit ErrUpstreamUnavailable zurück; der Aufrufer entscheidet über
// den HTTP-Status. Es findet bewusst keine Deduplizierung statt.
func (s *ScrapeService) Run(ctx context.Context, sourceID string) (*RunResult, error) {
	result := &RunResult{RunID: uuid.NewString(), SourceID: sourceID, Items: []models.Article{}}

	fetchedFrom, raw, err := s.Probe.FetchFirst(ctx)
	if err != nil {
		s.Logger.Warn("Keine Scrape-Quelle erreichbar", zap.Error(err))
		return result, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	result.FetchedFrom = fetchedFrom

	for _, item := range raw {
		article := normalizeItem(item, sourceID)
		if err := s.Store.SaveArticle(&article); err != nil {
			s.Logger.Error("Artikel konnte nicht gespeichert werden",
				zap.String("article_id", article.ID), zap.Error(err))
			continue
		}
		result.Items = append(result.Items, article)
	}
	result.Count = len(result.Items)

	s.Logger.Info("Scrape-Lauf abgeschlossen",
		zap.String("run_id", result.RunID),
		zap.String("fetched_from", fetchedFrom),
		zap.Int("count", result.Count))
	return result, nil
}

// RunScheduled ist der Cron-Lauf: JSON-Quelle plus HTML-Suche pro
// Region-Keyword. Anders als Run dedupliziert er anhand der Quell-URL,
// damit derselbe Upstream-Artikel nicht bei jedem Intervall erneut in der
// Pipeline landet. Quellen-Ausfälle degradieren zu einem leeren Teilergebnis.
func (s *ScrapeService) RunScheduled(ctx context.Context) int {
	inserted := 0

	if result, err := s.runProbeDeduped(ctx); err == nil {
		inserted += result
	}

	for _, keyword := range s.Keywords {
		results, err := s.HTML.Search(ctx, keyword)
		if err != nil {
			s.Logger.Warn("HTML-Quelle fehlgeschlagen",
				zap.String("keyword", keyword), zap.Error(err))
			continue
		}
		for _, r := range results {
			if skip, _ := s.Store.HasArticleURL(r.URL); skip {
				continue
			}
			article := models.Article{
				ID:            uuid.NewString(),
				SourceID:      s.HTML.Name(),
				Status:        models.StatusPending,
				Title:         r.Title,
				Content:       r.Summary,
				CoverImageURL: r.ImageURL,
				URL:           r.URL,
				Category:      r.Category,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			if err := s.Store.SaveArticle(&article); err != nil {
				s.Logger.Error("Artikel konnte nicht gespeichert werden", zap.Error(err))
				continue
			}
			inserted++
		}
	}

	return inserted
}

func (s *ScrapeService) runProbeDeduped(ctx context.Context) (int, error) {
	fetchedFrom, raw, err := s.Probe.FetchFirst(ctx)
	if err != nil {
		s.Logger.Warn("JSON-Quelle im Cron-Lauf nicht erreichbar", zap.Error(err))
		return 0, err
	}

	inserted := 0
	for _, item := range raw {
		article := normalizeItem(item, "")
		if article.URL != "" {
			if skip, _ := s.Store.HasArticleURL(article.URL); skip {
				continue
			}
		}
		if err := s.Store.SaveArticle(&article); err != nil {
			continue
		}
		inserted++
	}
	s.Logger.Info("Cron-Probe abgeschlossen",
		zap.String("fetched_from", fetchedFrom), zap.Int("inserted", inserted))
	return inserted, nil
}

// normalizeItem macht aus einem rohen Upstream-Objekt einen pending-Artikel.
// Fehlende Felder bekommen generierte IDs bzw. Leerstring-Defaults; kein Feld
// darf die Ingestion zum Scheitern bringen.
func normalizeItem(item map[string]any, sourceID string) models.Article {
	now := time.Now()

	id := asString(item["id"])
	if id == "" {
		id = uuid.NewString()
	}
	src := asString(item["source_id"])
	if src == "" {
		src = sourceID
	}
	if src == "" {
		src = "external"
	}

	title := asString(item["title"])
	if title == "" {
		title = asString(item["name"])
	}

	content := asString(item["content"])
	if content == "" {
		if v, ok := item["content"]; ok && v != nil {
			if b, err := json.Marshal(v); err == nil {
				content = string(b)
			}
		}
	}

	cover := asString(item["cover_image_url"])
	if cover == "" {
		cover = asString(item["image"])
	}
	if cover == "" {
		cover = asString(item["image_url"])
	}

	article := models.Article{
		ID:            id,
		SourceID:      src,
		Status:        models.StatusPending,
		Title:         scraper.CleanText(title),
		Content:       content,
		CoverImageURL: cover,
		URL:           asString(item["url"]),
		Category:      asString(item["category"]),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	publishedAt := asString(item["published_at"])
	if publishedAt == "" {
		publishedAt = asString(item["publishedAt"])
	}
	if publishedAt != "" {
		if t, err := scraper.ParseNewsDate(publishedAt); err == nil {
			article.PublishedAt = &t
		}
	}

	return article
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
