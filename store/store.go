package store

import (
	"errors"

	"papua-newsroom/models"
)

// ErrNotFound wird zurückgegeben, wenn eine referenzierte Entität fehlt.
var ErrNotFound = errors.New("record not found")

// ArticleFilter schränkt ListArticles ein. Ein leerer Status bedeutet "alle";
// PageSize <= 0 schaltet die Paginierung ab.
type ArticleFilter struct {
	Status   models.ArticleStatus
	Page     int
	PageSize int
}

// Store ist die Persistenz-Grenze für Redaktions- und Portal-Daten.
// Der Article-Teil hat genau einen Schreiber (Verification/Publishing/Ingestion);
// die Portale lesen ausschließlich die PublicArticle-Projektion.
type Store interface {
	ListArticles(f ArticleFilter) ([]models.Article, error)
	FindArticle(id string) (*models.Article, error)
	SaveArticle(a *models.Article) error
	HasArticleURL(url string) (bool, error)

	AppendVerification(v *models.VerificationRecord) error
	AppendPublish(p *models.PublishRecord) error
	PublishRecords(articleID string) ([]models.PublishRecord, error)

	AddPublicArticle(a *models.PublicArticle) error
	ListPublicArticles(brand string) ([]models.PublicArticle, error)
	FindPublicArticle(id string) (*models.PublicArticle, error)

	ListSources() ([]models.Source, error)
	SaveSource(s *models.Source) error

	Settings() ([]models.Setting, error)
	UpsertSettings(entries []models.Setting) ([]models.Setting, error)
}
