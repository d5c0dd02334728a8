package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
)

type BookHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewBookHandler(catalogService *service.CatalogService) *BookHandler {
	return &BookHandler{
		catalogService: catalogService,
		validator:      utils.NewValidator(),
	}
}

func (h *BookHandler) ListBooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		books, err := h.catalogService.ListBooks(r.Context())

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"books": books,
			"total": len(books),
		})
	}
}

// GetBook doubles as the catalog's id search; a missing book is a neutral
// empty result, not an error banner.
func (h *BookHandler) GetBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		book, err := h.catalogService.GetBook(r.Context(), r.PathValue("id"))

		if err != nil {
			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
				response.Message(w, http.StatusOK, "Book not found", []models.Book{})
				return
			}

			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, book)
	}
}

func (h *BookHandler) CreateBook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.CreateBookRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		book, err := h.catalogService.CreateBook(r.Context(), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, book)
	}
}
