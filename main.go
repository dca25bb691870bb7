package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"papua-newsroom/config"
	"papua-newsroom/models"
	"papua-newsroom/scraper"
	"papua-newsroom/services"
	"papua-newsroom/store"
)

var (
	articlesIngestedCounter  prometheus.Counter
	articlesPublishedCounter prometheus.Counter
)

func init() {
	articlesIngestedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_ingested_total",
			Help: "Total number of scraped articles inserted into the pipeline.",
		},
	)
	articlesPublishedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_published_total",
			Help: "Total number of articles published to the public portals.",
		},
	)
	prometheus.MustRegister(articlesIngestedCounter, articlesPublishedCounter)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Store: Postgres via gorm, oder In-Memory im Mock-Daten-Modus.
	var st store.Store
	if cfg.UseMemoryStore() {
		logging.Info("DB_HOST nicht gesetzt, verwende In-Memory-Store.")
		st = store.NewMemory()
	} else {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			logging.Fatal("Failed to connect to database", zap.Error(err))
		}
		logging.Info("Successfully connected to database.")

		gs := store.NewGorm(db)
		logging.Info("Running database auto-migration...")
		if err := gs.Migrate(); err != nil {
			logging.Fatal("Auto-migration failed", zap.Error(err))
		}
		st = gs
	}

	// Seeding
	seedDefaultSources(st, cfg, logging)
	seedDefaultSettings(st, logging)
	seedSampleArticles(st, logging)

	// Setup Services
	probe := scraper.NewProbe(cfg.ScraperBaseURL, time.Duration(cfg.ScrapeTimeout)*time.Second, cfg.ScrapeRetries, logging)
	htmlScraper := scraper.NewSeputarPapua(cfg.SeputarPapuaBaseURL, nil, logging)
	scrapeService := services.NewScrapeService(st, logging, probe, htmlScraper, cfg.Keywords())
	editorial := services.NewEditorialService(st, logging, cfg.DefaultBrand)
	reader := services.NewReaderService(st, logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Admin-/Redaktions-Routen (mimika Dashboard)
	admin := router.Group("/api/mimika")
	setupArticleRoutes(admin, editorial, logging)
	setupSourceRoutes(admin, st, logging)
	setupScrapeRoutes(admin, scrapeService, logging)
	setupSettingsRoutes(admin, st, logging)

	// Öffentliche Lese-Routen (beide Portale)
	setupPublicNewsRoutes(router.Group("/public/v1"), reader, logging)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled scrape job...")
		count := scrapeService.RunScheduled(context.Background())
		articlesIngestedCounter.Add(float64(count))
		logging.Info("Scheduled scrape completed", zap.Int("new_articles", count))
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupArticleRoutes(rg *gin.RouterGroup, editorial *services.EditorialService, log *zap.Logger) {
	// Pipeline-Artikel mit Status-Filter und optionaler Paginierung
	rg.GET("/articles", func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		pageSize, _ := strconv.Atoi(c.Query("pageSize"))

		articles, err := editorial.List(c.Query("status"), page, pageSize)
		if err != nil {
			if errors.Is(err, services.ErrInvalidStatus) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "message": err.Error()})
				return
			}
			log.Error("Database query for articles failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": articles})
	})

	// Verifikation: pending -> verified oder hoax
	rg.POST("/articles/:id/verify", func(c *gin.Context) {
		var req struct {
			Decision string `json:"decision" binding:"required"`
			Notes    string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "message": "decision is required"})
			return
		}

		record, err := editorial.Verify(c.Param("id"), models.ArticleStatus(req.Decision), req.Notes)
		if err != nil {
			respondEditorialError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": record})
	})

	// Publish: verified -> published, Kopie in die öffentliche Projektion
	rg.POST("/articles/:id/publish", func(c *gin.Context) {
		var req struct {
			PublishAt   string `json:"publishAt"`
			TargetBrand string `json:"targetBrand"`
		}
		// Leerer Body ist erlaubt, alle Felder sind optional.
		_ = c.ShouldBindJSON(&req)

		var publishAt *time.Time
		if req.PublishAt != "" {
			t, err := scraper.ParseNewsDate(req.PublishAt)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "message": "invalid publishAt date"})
				return
			}
			publishAt = &t
		}

		record, err := editorial.Publish(c.Param("id"), publishAt, req.TargetBrand)
		if err != nil {
			respondEditorialError(c, log, err)
			return
		}
		articlesPublishedCounter.Inc()
		c.JSON(http.StatusOK, gin.H{"data": record})
	})
}

func respondEditorialError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND"})
	case errors.Is(err, services.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "message": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "INVALID_STATE_TRANSITION", "message": err.Error()})
	default:
		log.Error("Editorial operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
	}
}

func setupSourceRoutes(rg *gin.RouterGroup, st store.Store, log *zap.Logger) {
	rg.GET("/sources", func(c *gin.Context) {
		sources, err := st.ListSources()
		if err != nil {
			log.Error("Database query for sources failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": sources})
	})
}

func setupScrapeRoutes(rg *gin.RouterGroup, scrapeService *services.ScrapeService, log *zap.Logger) {
	rg.POST("/scrape/run", func(c *gin.Context) {
		var req struct {
			SourceID string `json:"sourceId"`
		}
		_ = c.ShouldBindJSON(&req)

		result, err := scrapeService.Run(c.Request.Context(), req.SourceID)
		if err != nil {
			// Harter Fehler, aber mit wohlgeformtem leeren Payload, damit die
			// Katalog-Ansicht immer rendern kann.
			c.JSON(http.StatusBadGateway, gin.H{"error": "UPSTREAM_UNAVAILABLE", "data": result})
			return
		}
		articlesIngestedCounter.Add(float64(result.Count))
		c.JSON(http.StatusOK, gin.H{"data": result})
	})
}

func setupSettingsRoutes(rg *gin.RouterGroup, st store.Store, log *zap.Logger) {
	rg.GET("/settings", func(c *gin.Context) {
		settings, err := st.Settings()
		if err != nil {
			log.Error("Database query for settings failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": settings})
	})

	rg.PUT("/settings", func(c *gin.Context) {
		var req struct {
			Settings []struct {
				Key   string          `json:"key" binding:"required"`
				Value json.RawMessage `json:"value"`
			} `json:"settings" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "message": "settings array is required"})
			return
		}

		entries := make([]models.Setting, 0, len(req.Settings))
		for _, s := range req.Settings {
			entries = append(entries, models.Setting{Key: s.Key, Value: s.Value})
		}

		settings, err := st.UpsertSettings(entries)
		if err != nil {
			log.Error("Settings upsert failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": settings})
	})
}

func setupPublicNewsRoutes(rg *gin.RouterGroup, reader *services.ReaderService, log *zap.Logger) {
	rg.GET("/news", func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		items, pagination, err := reader.List(services.ListQuery{
			Region:   c.Query("region"),
			Category: c.Query("category"),
			Search:   c.Query("q"),
			Page:     page,
			PageSize: limit,
		})
		if err != nil {
			if errors.Is(err, services.ErrMissingRegion) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "MISSING_REGION",
					"message": "Region parameter is mandatory (mimika/timika).",
				})
				return
			}
			log.Error("Public news query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": items,
			"meta": gin.H{
				"total_items": pagination.TotalItems,
				"total_pages": pagination.TotalPages,
				"page":        pagination.Page,
			},
		})
	})

	rg.GET("/news/:id", func(c *gin.Context) {
		item, err := reader.Get(c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Article Not Found"})
				return
			}
			log.Error("Public news detail failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": item})
	})
}

func seedDefaultSources(st store.Store, cfg *config.Config, logger *zap.Logger) {
	existing, err := st.ListSources()
	if err != nil || len(existing) > 0 {
		return
	}

	seeds, err := cfg.LoadSources()
	if err != nil {
		logger.Warn("Sources config konnte nicht geladen werden, verwende Defaults", zap.Error(err))
	}
	if len(seeds) == 0 {
		seeds = []config.SourceSeed{
			{ID: "src-1", Name: "Portal Berita Timika", URL: "https://timika-portal.example", Brand: "mimika", Active: true},
			{ID: "src-2", Name: "Mimika News", URL: "https://mimika-news.example", Brand: "mimika", Active: true},
			{ID: "src-3", Name: "Kompas Papua", URL: "https://kompas-papua.example", Brand: "mimika", Active: false},
			{ID: "src-4", Name: "Seputar Papua", URL: "https://seputarpapua.com", Brand: "timika", Active: true},
		}
	}

	for _, s := range seeds {
		src := models.Source{ID: s.ID, Name: s.Name, URL: s.URL, Brand: s.Brand, Active: s.Active}
		if err := st.SaveSource(&src); err != nil {
			logger.Warn("Failed to seed source", zap.String("id", s.ID), zap.Error(err))
		}
	}
	logger.Info("Default sources seeded.", zap.Int("count", len(seeds)))
}

func seedDefaultSettings(st store.Store, logger *zap.Logger) {
	existing, err := st.Settings()
	if err != nil || len(existing) > 0 {
		return
	}

	defaults := []models.Setting{
		{Key: "portal.name", Value: json.RawMessage(`"Timika News Portal"`)},
		{Key: "portal.url", Value: json.RawMessage(`"https://timikanews.com"`)},
		{Key: "autopublish.enabled", Value: json.RawMessage(`false`)},
		{Key: "notifications.email", Value: json.RawMessage(`true`)},
		{Key: "notifications.hoax", Value: json.RawMessage(`true`)},
		{Key: "notifications.daily", Value: json.RawMessage(`false`)},
		{Key: "scraper.intervalMinutes", Value: json.RawMessage(`30`)},
		{Key: "scraper.maxArticles", Value: json.RawMessage(`50`)},
		{Key: "scraper.enabled", Value: json.RawMessage(`true`)},
	}
	if _, err := st.UpsertSettings(defaults); err != nil {
		logger.Warn("Failed to seed default settings", zap.Error(err))
	} else {
		logger.Info("Default settings seeded.")
	}
}

func seedSampleArticles(st store.Store, logger *zap.Logger) {
	existing, err := st.ListArticles(store.ArticleFilter{})
	if err != nil || len(existing) > 0 {
		return
	}

	now := time.Now()
	samples := []models.Article{
		{
			ID: "1", SourceID: "src-1", Status: models.StatusPending,
			Title:         "Pembangunan Jalan Trans Papua Segera Dilanjutkan",
			CoverImageURL: "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?w=400",
			Category:      "Politik",
			CreatedAt:     now, UpdatedAt: now,
		},
		{
			ID: "2", SourceID: "src-2", Status: models.StatusVerified,
			Title:         "Festival Budaya Mimika Menyambut Tahun 2024",
			CoverImageURL: "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?w=400",
			Category:      "Budaya",
			CreatedAt:     now, UpdatedAt: now,
		},
		{
			ID: "3", SourceID: "src-3", Status: models.StatusHoax,
			Title:         "Hoaks: Klaim Palsu tentang Pertambangan",
			CoverImageURL: "https://images.unsplash.com/photo-1504192010706-dd7f569ee2be?w=400",
			Category:      "Sosial",
			CreatedAt:     now, UpdatedAt: now,
		},
	}
	for i := range samples {
		if err := st.SaveArticle(&samples[i]); err != nil {
			logger.Warn("Failed to seed sample article", zap.String("id", samples[i].ID), zap.Error(err))
		}
	}
	logger.Info("Sample articles seeded.")
}
