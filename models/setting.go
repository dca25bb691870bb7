package models

import (
	"encoding/json"
	"time"
)

// Setting ist ein Key/Value-Eintrag für die Admin-Konfiguration.
// Value ist ein beliebiges JSON-Payload und wird nicht validiert.
type Setting struct {
	ID        uint            `json:"-" gorm:"primaryKey"`
	Key       string          `json:"key" gorm:"uniqueIndex;not null"`
	Value     json.RawMessage `json:"value" gorm:"type:jsonb"`
	UpdatedAt time.Time       `json:"updated_at"`
}
