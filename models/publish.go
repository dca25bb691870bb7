package models

import "time"

// PublishRecord protokolliert eine Veröffentlichung (append-only, genau einmal pro Artikel).
type PublishRecord struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ArticleID   string    `json:"article_id" gorm:"index"`
	PublishedAt time.Time `json:"published_at"`
	PublishedBy string    `json:"published_by"`
	TargetBrand string    `json:"target_brand"`
}
