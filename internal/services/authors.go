package service

import (
	"context"
	"strings"
	"time"

	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

type AuthorService struct {
	authors gateway.AuthorClient

	now func() time.Time
}

func NewAuthorService(authors gateway.AuthorClient) *AuthorService {
	return &AuthorService{authors: authors, now: time.Now}
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]models.Author, error) {
	return s.authors.ListAuthors(ctx)
}

func (s *AuthorService) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.ValidationError("Enter a valid author id")
	}

	return s.authors.GetAuthor(ctx, id)
}

func (s *AuthorService) SearchByName(ctx context.Context, name string) ([]models.Author, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.ValidationError("Enter a name to search for")
	}

	return s.authors.SearchByName(ctx, name)
}

func (s *AuthorService) CreateAuthor(ctx context.Context, req *models.CreateAuthorRequest) (*models.Author, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	if firstName == "" || lastName == "" {
		return nil, errors.ValidationError("First and last name are required")
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, errors.ValidationError("Birth date is not valid")
	}

	if birthDate.After(s.now()) {
		return nil, errors.ValidationError("Birth date cannot be in the future")
	}

	author := &models.Author{
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: &birthDate,
	}

	if err := s.authors.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}
