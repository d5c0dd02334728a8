package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// CatalogService fronts the book catalog with the client-side validation
// the admin UI has always applied before creating records.
type CatalogService struct {
	catalog gateway.CatalogClient

	now func() time.Time
}

func NewCatalogService(catalog gateway.CatalogClient) *CatalogService {
	return &CatalogService{catalog: catalog, now: time.Now}
}

func (s *CatalogService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.catalog.ListBooks(ctx)
}

func (s *CatalogService) GetBook(ctx context.Context, id string) (*models.Book, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.ValidationError("Enter a valid book id")
	}

	return s.catalog.GetBook(ctx, id)
}

func (s *CatalogService) CreateBook(ctx context.Context, req *models.CreateBookRequest) (*models.Book, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < 3 {
		return nil, errors.ValidationError("Title is required and must be at least 3 characters")
	}

	published, err := parseDate(req.PublicationDate)
	if err != nil {
		return nil, errors.ValidationError("Publication date is not valid")
	}

	if published.After(s.now()) {
		return nil, errors.ValidationError("Publication date cannot be in the future")
	}

	if _, err := uuid.Parse(req.AuthorGUID); err != nil {
		return nil, errors.ValidationError("Author reference must be a valid UUID")
	}

	book := &models.Book{
		Title:           title,
		PublicationDate: published,
		AuthorGUID:      req.AuthorGUID,
	}

	if err := s.catalog.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", value)
}
