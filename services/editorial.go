package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"papua-newsroom/models"
	"papua-newsroom/scraper"
	"papua-newsroom/store"
)

const systemActor = "system"

// EditorialService besitzt die Status-Maschine der Redaktions-Pipeline:
// pending -> verified|hoax -> published. Übergänge laufen gegen die
// Transitionstabelle in models; unzulässige Übergänge werden abgelehnt.
type EditorialService struct {
	Store        store.Store
	Logger       *zap.Logger
	DefaultBrand string
}

// NewEditorialService erstellt eine neue Instanz.
func NewEditorialService(st store.Store, logger *zap.Logger, defaultBrand string) *EditorialService {
	if defaultBrand == "" {
		defaultBrand = "timika"
	}
	return &EditorialService{Store: st, Logger: logger, DefaultBrand: defaultBrand}
}

// List gibt Pipeline-Artikel zurück, optional nach Status gefiltert und
// offset-paginiert, sortiert nach updated_at absteigend.
func (e *EditorialService) List(status string, page, pageSize int) ([]models.Article, error) {
	filter := store.ArticleFilter{Page: page, PageSize: pageSize}
	if status != "" {
		s := models.ArticleStatus(status)
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
		}
		filter.Status = s
	}
	return e.Store.ListArticles(filter)
}

// Verify setzt einen Artikel auf verified oder hoax und protokolliert die
// Entscheidung. Eine Korrektur verified <-> hoax bleibt erlaubt und erzeugt
// jeweils einen weiteren Verification-Record; published ist endgültig.
func (e *EditorialService) Verify(id string, decision models.ArticleStatus, notes string) (*models.VerificationRecord, error) {
	if decision != models.StatusVerified && decision != models.StatusHoax {
		return nil, ErrInvalidDecision
	}

	article, err := e.Store.FindArticle(id)
	if err != nil {
		return nil, err
	}
	if !article.Status.CanTransition(decision) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, article.Status, decision)
	}

	now := time.Now()
	article.Status = decision
	article.UpdatedAt = now
	if err := e.Store.SaveArticle(article); err != nil {
		return nil, err
	}

	record := &models.VerificationRecord{
		ID:         uuid.NewString(),
		ArticleID:  id,
		Decision:   decision,
		Notes:      notes,
		VerifiedAt: now,
		VerifiedBy: systemActor,
	}
	if err := e.Store.AppendVerification(record); err != nil {
		return nil, err
	}

	e.Logger.Info("Artikel verifiziert",
		zap.String("article_id", id), zap.String("decision", string(decision)))
	return record, nil
}

// Publish setzt einen verifizierten Artikel auf published, protokolliert die
// Veröffentlichung und kopiert den Artikel in die öffentliche Projektion der
// Ziel-Brand. Der Kopierschritt läuft erst nach Status-Mutation und
// Publish-Record; schlägt er fehl, wird nicht zurückgerollt (keine
// Transaktionalität über beide Seiten), nur geloggt.
func (e *EditorialService) Publish(id string, publishAt *time.Time, targetBrand string) (*models.PublishRecord, error) {
	article, err := e.Store.FindArticle(id)
	if err != nil {
		return nil, err
	}
	if !article.Status.CanTransition(models.StatusPublished) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, article.Status, models.StatusPublished)
	}

	if targetBrand == "" {
		targetBrand = e.DefaultBrand
	}
	now := time.Now()
	publishedAt := now
	if publishAt != nil {
		publishedAt = *publishAt
	}

	article.Status = models.StatusPublished
	article.PublishedAt = &publishedAt
	article.UpdatedAt = now
	if err := e.Store.SaveArticle(article); err != nil {
		return nil, err
	}

	record := &models.PublishRecord{
		ID:          uuid.NewString(),
		ArticleID:   id,
		PublishedAt: publishedAt,
		PublishedBy: systemActor,
		TargetBrand: targetBrand,
	}
	if err := e.Store.AppendPublish(record); err != nil {
		return nil, err
	}

	public := &models.PublicArticle{
		ID:          "pub-" + article.ID,
		ArticleID:   article.ID,
		Brand:       targetBrand,
		Title:       article.Title,
		Summary:     scraper.Summarize(article.Content, 200),
		Content:     article.Content,
		ImageURL:    article.CoverImageURL,
		Category:    article.Category,
		Author:      "Redaksi",
		URL:         article.URL,
		PublishedAt: &publishedAt,
		CreatedAt:   now,
	}
	if err := e.Store.AddPublicArticle(public); err != nil {
		e.Logger.Error("Copy-on-publish fehlgeschlagen, Artikel bleibt published",
			zap.String("article_id", id), zap.Error(err))
	}

	e.Logger.Info("Artikel veröffentlicht",
		zap.String("article_id", id), zap.String("target_brand", targetBrand))
	return record, nil
}
