package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	// Leerer DB_HOST schaltet auf den In-Memory-Store um (Mock-Daten-Modus).
	DBHost     string `envconfig:"DB_HOST"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"papua_news"`

	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`

	ScraperBaseURL string `envconfig:"SCRAPER_BASE_URL" default:"https://mimika-api.vercel.app"`
	ScrapeTimeout  int    `envconfig:"SCRAPE_TIMEOUT_SECONDS" default:"15"`
	ScrapeRetries  int    `envconfig:"SCRAPE_RETRIES" default:"1"`

	SeputarPapuaBaseURL string `envconfig:"SEPUTARPAPUA_BASE_URL" default:"https://seputarpapua.com"`
	// Komma-getrennte Suchbegriffe, einer pro Brand/Region.
	RegionKeywords string `envconfig:"REGION_KEYWORDS" default:"mimika,timika"`

	DefaultBrand string `envconfig:"DEFAULT_BRAND" default:"timika"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"*/30 * * * *"`

	// Optionale YAML-Datei, die die Default-Quellen ersetzt.
	SourcesConfigPath string `envconfig:"SOURCES_CONFIG"`
}

// SourceSeed beschreibt eine Scrape-Quelle aus der optionalen YAML-Datei.
type SourceSeed struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Brand  string `yaml:"brand"`
	Active bool   `yaml:"active"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// UseMemoryStore meldet, ob der In-Memory-Store statt Postgres verwendet wird.
func (c *Config) UseMemoryStore() bool {
	return c.DBHost == ""
}

// Keywords liefert die Region-Suchbegriffe als Slice.
func (c *Config) Keywords() []string {
	var out []string
	for _, k := range strings.Split(c.RegionKeywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// LoadSources liest die Quellen-Liste aus der YAML-Datei, falls konfiguriert.
func (c *Config) LoadSources() ([]SourceSeed, error) {
	if c.SourcesConfigPath == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(c.SourcesConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read sources config: %w", err)
	}
	var seeds []SourceSeed
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}
	return seeds, nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return &c, err
}
