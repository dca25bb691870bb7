package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"papua-newsroom/models"
)

// Gorm ist die Postgres-Variante des Stores.
type Gorm struct {
	db *gorm.DB
}

// NewGorm erstellt den gorm-basierten Store.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate legt alle Tabellen an bzw. zieht Schema-Änderungen nach.
func (g *Gorm) Migrate() error {
	return g.db.AutoMigrate(
		&models.Article{},
		&models.VerificationRecord{},
		&models.PublishRecord{},
		&models.PublicArticle{},
		&models.Source{},
		&models.Setting{},
	)
}

func (g *Gorm) ListArticles(f ArticleFilter) ([]models.Article, error) {
	query := g.db.Model(&models.Article{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.PageSize > 0 {
		query = query.Offset(f.Page * f.PageSize).Limit(f.PageSize)
	}

	var articles []models.Article
	if err := query.Order("updated_at desc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (g *Gorm) FindArticle(id string) (*models.Article, error) {
	var a models.Article
	if err := g.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (g *Gorm) SaveArticle(a *models.Article) error {
	return g.db.Save(a).Error
}

func (g *Gorm) HasArticleURL(url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	var count int64
	if err := g.db.Model(&models.Article{}).Where("url = ?", url).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (g *Gorm) AppendVerification(v *models.VerificationRecord) error {
	return g.db.Create(v).Error
}

func (g *Gorm) AppendPublish(p *models.PublishRecord) error {
	return g.db.Create(p).Error
}

func (g *Gorm) PublishRecords(articleID string) ([]models.PublishRecord, error) {
	var records []models.PublishRecord
	if err := g.db.Where("article_id = ?", articleID).Order("published_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (g *Gorm) AddPublicArticle(a *models.PublicArticle) error {
	return g.db.Create(a).Error
}

func (g *Gorm) ListPublicArticles(brand string) ([]models.PublicArticle, error) {
	query := g.db.Model(&models.PublicArticle{})
	if brand != "" {
		query = query.Where("lower(brand) = lower(?)", brand)
	}

	var articles []models.PublicArticle
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (g *Gorm) FindPublicArticle(id string) (*models.PublicArticle, error) {
	var a models.PublicArticle
	if err := g.db.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (g *Gorm) ListSources() ([]models.Source, error) {
	var sources []models.Source
	if err := g.db.Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

func (g *Gorm) SaveSource(s *models.Source) error {
	return g.db.Save(s).Error
}

func (g *Gorm) Settings() ([]models.Setting, error) {
	var settings []models.Setting
	if err := g.db.Order("id asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (g *Gorm) UpsertSettings(entries []models.Setting) ([]models.Setting, error) {
	for _, e := range entries {
		setting := models.Setting{Key: e.Key, Value: e.Value}
		err := g.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&setting).Error
		if err != nil {
			return nil, err
		}
	}
	return g.Settings()
}
