package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const searchPageHTML = `
<html><body>
  <div class="article-item">
    <h2><a href="https://seputarpapua.com/view/banjir-timika.html">Banjir Rendam Tiga Distrik di Timika</a></h2>
    <p>Hujan deras menyebabkan banjir di tiga distrik.</p>
    <img src="https://seputarpapua.com/img/banjir.jpg">
    <span class="article-date">21 Januari 2026</span>
    <span class="category">Sosial</span>
  </div>
  <div class="article-item">
    <h3><a href="https://seputarpapua.com/view/festival-mimika.html">Festival Budaya Mimika Digelar</a></h3>
    <p>Festival tahunan kembali digelar.</p>
  </div>
  <div class="article-item">
    <p>Kaputtes Item ohne Link und Titel.</p>
  </div>
</body></html>`

func TestExtractItems(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(searchPageHTML))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	s := NewSeputarPapua("https://seputarpapua.com", nil, zap.NewNop())
	results := s.extractItems(doc)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (item without link is skipped)", len(results))
	}

	first := results[0]
	if first.Title != "Banjir Rendam Tiga Distrik di Timika" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://seputarpapua.com/view/banjir-timika.html" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Summary != "Hujan deras menyebabkan banjir di tiga distrik." {
		t.Errorf("summary = %q", first.Summary)
	}
	if first.ImageURL != "https://seputarpapua.com/img/banjir.jpg" {
		t.Errorf("image = %q", first.ImageURL)
	}
	if first.Category != "Sosial" {
		t.Errorf("category = %q", first.Category)
	}
	want := time.Date(2026, time.January, 21, 0, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("published_at = %v, want %v", first.PublishedAt, want)
	}

	second := results[1]
	if second.Title != "Festival Budaya Mimika Digelar" {
		t.Errorf("second title = %q", second.Title)
	}
	if !second.PublishedAt.IsZero() {
		t.Errorf("second published_at = %v, want zero", second.PublishedAt)
	}
}

func TestSearchBuildsQueryAndParses(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "timika" {
			t.Errorf("keyword query = %q, want timika", got)
		}
		if got := r.URL.Query().Get("post_type"); got != "post" {
			t.Errorf("post_type = %q, want post", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("user agent = %q, want browser-like", ua)
		}
		w.Write([]byte(searchPageHTML))
	}))
	defer srv.Close()

	s := NewSeputarPapua(srv.URL, srv.Client(), zap.NewNop())
	results, err := s.Search(context.Background(), "timika")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("results = %d, want 2", len(results))
	}
}

func TestSearchUpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSeputarPapua(srv.URL, srv.Client(), zap.NewNop())
	if _, err := s.Search(context.Background(), "mimika"); err == nil {
		t.Fatal("expected error on HTTP 403")
	}
}
