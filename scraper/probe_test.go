package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFetchFirstPicksFirstJSONCandidate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/articles", "/news":
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write([]byte(`[{"title": "A"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	probe := NewProbe(srv.URL, time.Second, 0, zap.NewNop())
	url, items, err := probe.FetchFirst(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if url != srv.URL+"/api/articles" {
		t.Errorf("url = %q, want the first candidate /api/articles", url)
	}
	if len(items) != 1 || items[0]["title"] != "A" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestFetchFirstSkipsNonJSONContentType(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/articles":
			// Gültiges JSON, aber falscher Content-Type: muss übersprungen werden.
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`[{"title": "html"}]`))
		case "/articles":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": [{"title": "B"}, "kein objekt"]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	probe := NewProbe(srv.URL, time.Second, 0, zap.NewNop())
	url, items, err := probe.FetchFirst(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if url != srv.URL+"/articles" {
		t.Errorf("url = %q, want /articles", url)
	}
	// Das data-Wrapper-Objekt wird entpackt, Nicht-Objekte werden verworfen.
	if len(items) != 1 || items[0]["title"] != "B" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestFetchFirstNoEndpoint(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	probe := NewProbe(srv.URL, time.Second, 1, zap.NewNop())
	if _, _, err := probe.FetchFirst(context.Background()); !errors.Is(err, ErrNoJSONEndpoint) {
		t.Fatalf("err = %v, want ErrNoJSONEndpoint", err)
	}
}
