package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/api/middleware"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
)

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   utils.NewValidator(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		order, err := h.cartService.Load(r.Context())

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"order":         order,
			"display_total": order.DisplayTotal(),
		})
	}
}

func (h *CartHandler) SetQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.SetQuantityRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		if err := utils.ValidateStruct(h.validator, req); err != nil {
			response.Error(w, appErrors.ValidationError(err.Error()))
			return
		}

		order, err := h.cartService.SetQuantity(r.Context(), &req)

		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Cart quantity updated")
		response.Success(w, http.StatusOK, map[string]any{
			"order":         order,
			"display_total": order.DisplayTotal(),
		})
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		itemID := r.PathValue("id")

		if itemID == "" {
			response.Error(w, appErrors.BadRequestError("Item id is required"))
			return
		}

		order, err := h.cartService.RemoveItem(r.Context(), itemID)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"order":         order,
			"display_total": order.DisplayTotal(),
		})
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		order, err := h.cartService.ClearAll(r.Context())

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"order":         order,
			"display_total": order.DisplayTotal(),
		})
	}
}
