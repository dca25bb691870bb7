package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"papua-newsroom/models"
)

func TestMemoryArticleLifecycle(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	now := time.Now()

	a := models.Article{ID: "a1", Status: models.StatusPending, Title: "Erste", URL: "https://news.example/a", UpdatedAt: now}
	if err := m.SaveArticle(&a); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Update statt Duplikat.
	a.Status = models.StatusVerified
	if err := m.SaveArticle(&a); err != nil {
		t.Fatalf("update: %v", err)
	}
	all, _ := m.ListArticles(ArticleFilter{})
	if len(all) != 1 || all[0].Status != models.StatusVerified {
		t.Fatalf("unexpected list after update: %+v", all)
	}

	found, err := m.FindArticle("a1")
	if err != nil || found.Title != "Erste" {
		t.Fatalf("find: %v %+v", err, found)
	}
	if _, err := m.FindArticle("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("find missing: err = %v, want ErrNotFound", err)
	}

	if has, _ := m.HasArticleURL("https://news.example/a"); !has {
		t.Error("HasArticleURL missed existing url")
	}
	if has, _ := m.HasArticleURL(""); has {
		t.Error("empty url must never match")
	}
}

func TestMemoryListArticlesSortAndPaginate(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	base := time.Now()
	for i, id := range []string{"a1", "a2", "a3"} {
		a := models.Article{ID: id, Status: models.StatusPending, UpdatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := m.SaveArticle(&a); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	// Neueste zuerst.
	all, _ := m.ListArticles(ArticleFilter{})
	if all[0].ID != "a3" || all[2].ID != "a1" {
		t.Errorf("sort order: %s %s %s", all[0].ID, all[1].ID, all[2].ID)
	}

	page, _ := m.ListArticles(ArticleFilter{Page: 1, PageSize: 2})
	if len(page) != 1 || page[0].ID != "a1" {
		t.Errorf("page 1: %+v", page)
	}
	empty, _ := m.ListArticles(ArticleFilter{Page: 5, PageSize: 2})
	if len(empty) != 0 {
		t.Errorf("page past end = %d items", len(empty))
	}
}

func TestMemoryPublicArticlesBrandFilter(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.AddPublicArticle(&models.PublicArticle{ID: "p1", Brand: "timika"})
	m.AddPublicArticle(&models.PublicArticle{ID: "p2", Brand: "mimika"})

	timika, _ := m.ListPublicArticles("Timika")
	if len(timika) != 1 || timika[0].ID != "p1" {
		t.Errorf("brand filter: %+v", timika)
	}
	all, _ := m.ListPublicArticles("")
	if len(all) != 2 {
		t.Errorf("empty brand = %d items, want all", len(all))
	}
	if _, err := m.FindPublicArticle("p3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("find missing: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryUpsertSettingsKeepsOrder(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	seed := []models.Setting{
		{Key: "portal.name", Value: json.RawMessage(`"Timika News Portal"`)},
		{Key: "scraper.enabled", Value: json.RawMessage(`true`)},
	}
	if _, err := m.UpsertSettings(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Bekannter Key wird ersetzt, neuer Key hinten angehängt, Reihenfolge bleibt.
	out, err := m.UpsertSettings([]models.Setting{
		{Key: "portal.name", Value: json.RawMessage(`"Portal Mimika"`)},
		{Key: "autopublish.enabled", Value: json.RawMessage(`false`)},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	wantKeys := []string{"portal.name", "scraper.enabled", "autopublish.enabled"}
	if len(out) != len(wantKeys) {
		t.Fatalf("settings = %d, want %d", len(out), len(wantKeys))
	}
	for i, key := range wantKeys {
		if out[i].Key != key {
			t.Errorf("position %d = %s, want %s", i, out[i].Key, key)
		}
	}
	if string(out[0].Value) != `"Portal Mimika"` {
		t.Errorf("value not replaced: %s", out[0].Value)
	}
	if out[0].UpdatedAt.IsZero() {
		t.Error("updated_at not set on upsert")
	}
}

func TestMemoryPublishRecords(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	m.AppendPublish(&models.PublishRecord{ID: "r1", ArticleID: "a1"})
	m.AppendPublish(&models.PublishRecord{ID: "r2", ArticleID: "a2"})

	records, _ := m.PublishRecords("a1")
	if len(records) != 1 || records[0].ID != "r1" {
		t.Errorf("records: %+v", records)
	}
}
