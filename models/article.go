package models

import "time"

// ArticleStatus ist der Lebenszyklus-Status eines gescrapten Artikels.
type ArticleStatus string

const (
	StatusPending   ArticleStatus = "pending"
	StatusVerified  ArticleStatus = "verified"
	StatusHoax      ArticleStatus = "hoax"
	StatusPublished ArticleStatus = "published"
)

// transitions lists the allowed next states per current state. Published is
// terminal; re-verification between verified and hoax stays possible so an
// editor can correct a decision before publishing.
var transitions = map[ArticleStatus][]ArticleStatus{
	StatusPending:  {StatusVerified, StatusHoax},
	StatusVerified: {StatusHoax, StatusPublished},
	StatusHoax:     {StatusVerified},
}

// Valid reports whether s is one of the four lifecycle states.
func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusHoax, StatusPublished:
		return true
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
func (s ArticleStatus) CanTransition(next ArticleStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Article ist ein redaktioneller Datensatz in der Scrape -> Verify -> Publish Pipeline.
type Article struct {
	ID            string        `json:"id" gorm:"primaryKey"`
	SourceID      string        `json:"source_id" gorm:"index"`
	Status        ArticleStatus `json:"status" gorm:"index;default:'pending'"`
	Title         string        `json:"title"`
	Content       string        `json:"content,omitempty" gorm:"type:text"`
	CoverImageURL string        `json:"cover_image_url,omitempty"`
	URL           string        `json:"url,omitempty" gorm:"index"`
	Category      string        `json:"category,omitempty" gorm:"index"`
	PublishedAt   *time.Time    `json:"published_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName gibt explizit den Tabellennamen an.
func (Article) TableName() string {
	return "scraped_articles"
}
