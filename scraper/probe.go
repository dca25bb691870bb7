package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNoJSONEndpoint meldet, dass keiner der Kandidaten-Endpunkte eine
// JSON-Antwort geliefert hat.
var ErrNoJSONEndpoint = errors.New("no candidate endpoint returned json")

// candidateSuffixes werden in dieser Reihenfolge gegen die Basis-URL probiert;
// der erste Treffer (HTTP-Success + JSON-Content-Type) gewinnt.
var candidateSuffixes = []string{"api/articles", "articles", "api/news", "news"}

// Probe fragt eine externe Quelle über eine feste Liste bekannter
// Endpunkt-Pfade ab. Die Ergebnisse bleiben rohe JSON-Objekte; die defensive
// Normalisierung übernimmt der Ingestion-Service.
type Probe struct {
	baseURL string
	client  *http.Client
	retries int
	logger  *zap.Logger
}

// NewProbe erstellt einen Prober mit gebundenem Timeout.
func NewProbe(baseURL string, timeout time.Duration, retries int, logger *zap.Logger) *Probe {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &Probe{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		logger:  logger,
	}
}

// FetchFirst probiert die Kandidaten der Reihe nach und gibt die URL des
// ersten Treffers plus dessen Items zurück. Kandidaten werden nicht gemischt
// oder verglichen.
func (p *Probe) FetchFirst(ctx context.Context) (string, []map[string]any, error) {
	for _, suffix := range candidateSuffixes {
		url := p.baseURL + "/" + suffix
		items, ok := p.tryFetch(ctx, url)
		if ok {
			p.logger.Info("Scrape-Quelle gefunden", zap.String("url", url), zap.Int("items", len(items)))
			return url, items, nil
		}
	}
	return "", nil, ErrNoJSONEndpoint
}

func (p *Probe) tryFetch(ctx context.Context, url string) ([]map[string]any, bool) {
	var resp *http.Response
	for attempt := 0; attempt <= p.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, false
		}
		resp, err = p.client.Do(req)
		if err == nil {
			break
		}
		p.logger.Debug("Kandidat nicht erreichbar", zap.String("url", url), zap.Int("attempt", attempt), zap.Error(err))
		resp = nil
	}
	if resp == nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, false
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return nil, false
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false
	}
	return extractItems(payload), true
}

// extractItems akzeptiert ein Top-Level-Array oder {"data": [...]};
// Nicht-Objekte im Array werden verworfen.
func extractItems(payload any) []map[string]any {
	var raw []any
	switch v := payload.(type) {
	case []any:
		raw = v
	case map[string]any:
		if data, ok := v["data"].([]any); ok {
			raw = data
		}
	}

	items := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items
}
