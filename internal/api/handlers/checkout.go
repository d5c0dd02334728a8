package handlers

import (
	"net/http"

	"github.com/javiersolis/bookstore-admin-gateway/internal/api/middleware"
	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// Submit captures buyer details and purchases the current cart. Validation
// happens in the service, field by field in a fixed order, so the handler only
// guards against malformed JSON shapes.
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var buyer models.BuyerDetails
		if err := utils.DecodeJSONBody(r, &buyer); err != nil {
			response.Error(w, appErrors.BadRequestError(err.Error()))
			return
		}

		result, err := h.checkoutService.Submit(r.Context(), buyer)

		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Purchase submitted")
		response.Success(w, http.StatusOK, result)
	}
}
