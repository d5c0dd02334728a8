package handlers

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
)

type AuthorHandler struct {
	authorService *service.AuthorService
	validator     *validator.Validate
}

func NewAuthorHandler(authorService *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{
		authorService: authorService,
		validator:     utils.NewValidator(),
	}
}

func (h *AuthorHandler) ListAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		authors, err := h.authorService.ListAuthors(r.Context())

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"authors": authors,
			"total":   len(authors),
		})
	}
}

func (h *AuthorHandler) GetAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		author, err := h.authorService.GetAuthor(r.Context(), r.PathValue("id"))

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, author)
	}
}

// SearchAuthors reports a missing name as a neutral empty result so the
// client can render "no matches" instead of an error.
func (h *AuthorHandler) SearchAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		name := strings.TrimSpace(r.URL.Query().Get("name"))

		authors, err := h.authorService.SearchByName(r.Context(), name)

		if err != nil {
			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
				response.Message(w, http.StatusOK, "No authors matched the search", []models.Author{})
				return
			}

			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"authors": authors,
			"total":   len(authors),
		})
	}
}

func (h *AuthorHandler) CreateAuthor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateAuthorRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		author, err := h.authorService.CreateAuthor(r.Context(), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, author)
	}
}
