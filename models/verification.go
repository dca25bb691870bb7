package models

import "time"

// VerificationRecord protokolliert eine Verifikations-Entscheidung (append-only).
type VerificationRecord struct {
	ID         string        `json:"id" gorm:"primaryKey"`
	ArticleID  string        `json:"article_id" gorm:"index"`
	Decision   ArticleStatus `json:"decision"`
	Notes      string        `json:"notes,omitempty"`
	VerifiedAt time.Time     `json:"verified_at"`
	VerifiedBy string        `json:"verified_by"`
}
