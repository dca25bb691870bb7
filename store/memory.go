package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"papua-newsroom/models"
)

// Memory ist die In-Memory-Variante des Stores. Sie entspricht dem
// Mock-Daten-Modus ohne Datenbank und dient zugleich als Test-Engine.
// Alle Zugriffe sind Mutex-geschützt; gorm übernimmt das im DB-Modus selbst.
type Memory struct {
	mu            sync.RWMutex
	articles      []models.Article
	verifications []models.VerificationRecord
	publishes     []models.PublishRecord
	public        []models.PublicArticle
	sources       []models.Source
	settings      []models.Setting
}

// NewMemory erstellt einen leeren In-Memory-Store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) ListArticles(f ArticleFilter) ([]models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := make([]models.Article, 0, len(m.articles))
	for _, a := range m.articles {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		data = append(data, a)
	}
	sort.SliceStable(data, func(i, j int) bool {
		return data[i].UpdatedAt.After(data[j].UpdatedAt)
	})
	return paginate(data, f.Page, f.PageSize), nil
}

func (m *Memory) FindArticle(id string) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.articles {
		if m.articles[i].ID == id {
			a := m.articles[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) SaveArticle(a *models.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.articles {
		if m.articles[i].ID == a.ID {
			m.articles[i] = *a
			return nil
		}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.articles = append(m.articles, *a)
	return nil
}

func (m *Memory) HasArticleURL(url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.articles {
		if m.articles[i].URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) AppendVerification(v *models.VerificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, *v)
	return nil
}

func (m *Memory) AppendPublish(p *models.PublishRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishes = append(m.publishes, *p)
	return nil
}

func (m *Memory) PublishRecords(articleID string) ([]models.PublishRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.PublishRecord
	for _, p := range m.publishes {
		if p.ArticleID == articleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *Memory) AddPublicArticle(a *models.PublicArticle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.public = append(m.public, *a)
	return nil
}

func (m *Memory) ListPublicArticles(brand string) ([]models.PublicArticle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.PublicArticle
	for _, a := range m.public {
		if brand != "" && !strings.EqualFold(a.Brand, brand) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *Memory) FindPublicArticle(id string) (*models.PublicArticle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.public {
		if m.public[i].ID == id {
			a := m.public[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListSources() ([]models.Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Source, len(m.sources))
	copy(out, m.sources)
	return out, nil
}

func (m *Memory) SaveSource(s *models.Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.sources {
		if m.sources[i].ID == s.ID {
			m.sources[i] = *s
			return nil
		}
	}
	m.sources = append(m.sources, *s)
	return nil
}

func (m *Memory) Settings() ([]models.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Setting, len(m.settings))
	copy(out, m.settings)
	return out, nil
}

// UpsertSettings ersetzt Value/UpdatedAt bekannter Keys und hängt unbekannte
// Keys hinten an; die relative Reihenfolge bestehender Einträge bleibt erhalten.
func (m *Memory) UpsertSettings(entries []models.Setting) ([]models.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, e := range entries {
		found := false
		for i := range m.settings {
			if m.settings[i].Key == e.Key {
				m.settings[i].Value = e.Value
				m.settings[i].UpdatedAt = now
				found = true
				break
			}
		}
		if !found {
			m.settings = append(m.settings, models.Setting{Key: e.Key, Value: e.Value, UpdatedAt: now})
		}
	}

	out := make([]models.Setting, len(m.settings))
	copy(out, m.settings)
	return out, nil
}

func paginate(data []models.Article, page, pageSize int) []models.Article {
	if pageSize <= 0 {
		return data
	}
	start := page * pageSize
	if start >= len(data) {
		return []models.Article{}
	}
	end := start + pageSize
	if end > len(data) {
		end = len(data)
	}
	return data[start:end]
}
