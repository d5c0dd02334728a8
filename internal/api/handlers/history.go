package handlers

import (
	"net/http"
	"strconv"

	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
)

type HistoryHandler struct {
	historyService *service.HistoryService
}

func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) ListPurchases() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		records, err := h.historyService.FetchHistory(r.Context())

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]any{
			"purchases": records,
			"total":     len(records),
		})
	}
}

func (h *HistoryHandler) GetPurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			response.Error(w, appErrors.ValidationError("Enter a valid purchase id"))
			return
		}

		record, err := h.historyService.ExpandDetail(r.Context(), id)

		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, record)
	}
}

// SearchPurchase answers a missing purchase with a neutral empty result
// rather than an error banner.
func (h *HistoryHandler) SearchPurchase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		record, err := h.historyService.SearchByID(r.Context(), r.URL.Query().Get("id"))

		if err != nil {
			if appErr, ok := appErrors.IsAppError(err); ok && appErr.Code == appErrors.ErrCodeNotFound {
				response.Message(w, http.StatusOK, "Purchase not found", []models.PurchaseRecord{})
				return
			}

			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, record)
	}
}

// GetReceipt streams the purchase document: the upstream PDF when it is
// available, the printable HTML fallback otherwise.
func (h *HistoryHandler) GetReceipt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil || id <= 0 {
			response.Error(w, appErrors.ValidationError("Enter a valid purchase id"))
			return
		}

		result, err := h.historyService.Receipt(r.Context(), id)

		if err != nil {
			response.Error(w, err)
			return
		}

		w.Header().Set("Content-Type", result.ContentType)
		w.Header().Set("Content-Disposition", `inline; filename="`+result.Filename+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(result.Body)
	}
}
