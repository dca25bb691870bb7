package models

import "time"

// PublicArticle ist die lesezugriffs-optimierte Projektion für die Portale.
// Sie wird ausschließlich vom Publishing-Service (copy-on-publish) geschrieben.
type PublicArticle struct {
	ID        string `json:"id" gorm:"primaryKey"`
	ArticleID string `json:"article_id,omitempty" gorm:"index"`
	Brand     string `json:"brand" gorm:"index"`

	Title    string `json:"title" gorm:"not null"`
	Summary  string `json:"summary,omitempty"`
	Content  string `json:"content,omitempty" gorm:"type:text"`
	ImageURL string `json:"image_url,omitempty"`
	Category string `json:"category,omitempty" gorm:"index"`
	Author   string `json:"author,omitempty"`
	URL      string `json:"url,omitempty"`

	// Date trägt das lokalisierte Textdatum ("16 Januari 2025"), sofern die
	// Quelle eines lieferte; sonst wird es aus PublishedAt abgeleitet.
	Date        string     `json:"date,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName gibt explizit den Tabellennamen an.
func (PublicArticle) TableName() string {
	return "public_articles"
}
