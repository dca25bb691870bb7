package models

// Source ist eine Scrape-Quelle (statische Referenzdaten).
type Source struct {
	ID     string `json:"id" gorm:"primaryKey"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Brand  string `json:"brand" gorm:"index"`
	Active bool   `json:"active" gorm:"default:true"`
}
