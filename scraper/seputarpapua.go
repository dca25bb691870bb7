package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const seputarPapuaUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Result ist ein von einer HTML-Quelle extrahierter Artikel-Kandidat.
type Result struct {
	Title       string
	URL         string
	Summary     string
	ImageURL    string
	Category    string
	PublishedAt time.Time
}

// SeputarPapua scrapt die Suchseiten von seputarpapua.com
// (?s=<keyword>&post_type=post, Treffer in div.article-item).
type SeputarPapua struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewSeputarPapua verdrahtet einen HTTP-Client; nil ergibt einen Default mit Timeout.
func NewSeputarPapua(baseURL string, client *http.Client, logger *zap.Logger) *SeputarPapua {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &SeputarPapua{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// Name identifiziert die Quelle in Logs und Run-Ergebnissen.
func (s *SeputarPapua) Name() string {
	return "seputarpapua"
}

// Search lädt die Suchseite für ein Keyword und extrahiert alle Artikel-Items.
func (s *SeputarPapua) Search(ctx context.Context, keyword string) ([]Result, error) {
	searchURL := fmt.Sprintf("%s/?s=%s&post_type=post", s.baseURL, url.QueryEscape(keyword))

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("keyword %s: %w", keyword, err)
	}

	results := s.extractItems(doc)
	s.logger.Info("SeputarPapua-Suche abgeschlossen",
		zap.String("keyword", keyword), zap.Int("items", len(results)))
	return results, nil
}

func (s *SeputarPapua) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", seputarPapuaUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seputarpapua returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func (s *SeputarPapua) extractItems(doc *goquery.Document) []Result {
	var results []Result

	doc.Find("div.article-item").Each(func(i int, item *goquery.Selection) {
		link := item.Find("h2 a, h3 a, .article-title a").First()
		href, _ := link.Attr("href")
		title := CleanText(link.Text())
		if title == "" || href == "" {
			return
		}

		r := Result{
			Title:    title,
			URL:      href,
			Summary:  CleanText(item.Find("p").First().Text()),
			Category: CleanText(item.Find(".article-category, .category").First().Text()),
		}
		if src, ok := item.Find("img").First().Attr("src"); ok {
			r.ImageURL = src
		}
		if dateText := CleanText(item.Find(".article-date, .date, time").First().Text()); dateText != "" {
			if t, err := ParseNewsDate(dateText); err == nil {
				r.PublishedAt = t
			}
		}
		results = append(results, r)
	})

	return results
}
