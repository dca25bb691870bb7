package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"papua-newsroom/models"
	"papua-newsroom/scraper"
	"papua-newsroom/store"
)

// newUpstream simuliert die externe JSON-Quelle: nur /api/news liefert JSON,
// die früheren Kandidaten-Pfade antworten mit 404 bzw. HTML.
func newUpstream(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/articles":
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("<html>kein api</html>"))
		case "/api/news":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(body))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newScrapeFixture(t *testing.T, baseURL string) (*ScrapeService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	probe := scraper.NewProbe(baseURL, 2*time.Second, 0, zap.NewNop())
	return NewScrapeService(mem, zap.NewNop(), probe, nil, nil), mem
}

func TestRunNormalizesItems(t *testing.T) {
	t.Parallel()

	srv := newUpstream(t, `{"data": [
		{"title": "Banjir di Timika", "image": "https://img.example/banjir.jpg", "url": "https://news.example/banjir", "published_at": "21 Januari 2026"},
		{"name": "Festival Budaya", "category": "Budaya"}
	]}`)
	defer srv.Close()

	svc, mem := newScrapeFixture(t, srv.URL)
	result, err := svc.Run(context.Background(), "src-1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Count != 2 || len(result.Items) != 2 {
		t.Fatalf("count = %d items = %d, want 2/2", result.Count, len(result.Items))
	}
	if result.FetchedFrom != srv.URL+"/api/news" {
		t.Errorf("fetched_from = %q, want the /api/news candidate", result.FetchedFrom)
	}
	if result.RunID == "" {
		t.Error("run id missing")
	}

	first := result.Items[0]
	if first.ID == "" || first.ID == result.Items[1].ID {
		t.Error("missing ids must be generated and distinct")
	}
	if first.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", first.Status)
	}
	if first.SourceID != "src-1" {
		t.Errorf("source = %q, want src-1", first.SourceID)
	}
	if first.CoverImageURL != "https://img.example/banjir.jpg" {
		t.Errorf("cover = %q, image fallback not applied", first.CoverImageURL)
	}
	if first.PublishedAt == nil || first.PublishedAt.Day() != 21 || first.PublishedAt.Month() != time.January {
		t.Errorf("published_at = %v, textual date not parsed", first.PublishedAt)
	}

	second := result.Items[1]
	if second.Title != "Festival Budaya" {
		t.Errorf("title = %q, name fallback not applied", second.Title)
	}

	stored, _ := mem.ListArticles(store.ArticleFilter{})
	if len(stored) != 2 {
		t.Errorf("stored = %d, want 2", len(stored))
	}
}

func TestRunDoesNotDeduplicate(t *testing.T) {
	t.Parallel()

	srv := newUpstream(t, `[{"title": "Artikel A", "url": "https://news.example/a"}]`)
	defer srv.Close()

	svc, mem := newScrapeFixture(t, srv.URL)
	for i := 0; i < 2; i++ {
		result, err := svc.Run(context.Background(), "")
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if result.Count != 1 {
			t.Fatalf("run %d count = %d, want 1", i, result.Count)
		}
	}

	stored, _ := mem.ListArticles(store.ArticleFilter{})
	if len(stored) != 2 {
		t.Errorf("stored = %d, admin runs must not deduplicate", len(stored))
	}
}

func TestRunUpstreamUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc, mem := newScrapeFixture(t, srv.URL)
	result, err := svc.Run(context.Background(), "src-1")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
	}

	// Der Payload bleibt auch im Fehlerfall wohlgeformt.
	if result == nil {
		t.Fatal("result is nil on upstream failure")
	}
	if result.RunID == "" || result.Items == nil || result.Count != 0 {
		t.Errorf("unexpected failure payload: %+v", result)
	}

	stored, _ := mem.ListArticles(store.ArticleFilter{})
	if len(stored) != 0 {
		t.Errorf("stored = %d, want 0", len(stored))
	}
}

func TestRunScheduledDeduplicatesByURL(t *testing.T) {
	t.Parallel()

	srv := newUpstream(t, `[
		{"title": "Artikel A", "url": "https://news.example/a"},
		{"title": "Artikel B", "url": "https://news.example/b"}
	]`)
	defer srv.Close()

	svc, mem := newScrapeFixture(t, srv.URL)

	if got := svc.RunScheduled(context.Background()); got != 2 {
		t.Fatalf("first scheduled run inserted %d, want 2", got)
	}
	if got := svc.RunScheduled(context.Background()); got != 0 {
		t.Errorf("second scheduled run inserted %d, want 0", got)
	}

	stored, _ := mem.ListArticles(store.ArticleFilter{})
	if len(stored) != 2 {
		t.Errorf("stored = %d, want 2", len(stored))
	}
}

func TestNormalizeItemDefaults(t *testing.T) {
	t.Parallel()

	article := normalizeItem(map[string]any{"title": "Ohne Quelle"}, "")
	if article.SourceID != "external" {
		t.Errorf("source = %q, want external default", article.SourceID)
	}
	if article.ID == "" {
		t.Error("id not generated")
	}

	withNumericID := normalizeItem(map[string]any{"id": float64(42), "title": "Nummer"}, "src-2")
	if withNumericID.ID != "42" {
		t.Errorf("id = %q, want numeric id coerced to string", withNumericID.ID)
	}
	if withNumericID.SourceID != "src-2" {
		t.Errorf("source = %q, want src-2", withNumericID.SourceID)
	}
}
