package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/javiersolis/bookstore-admin-gateway/internal/api/handlers"
	"github.com/javiersolis/bookstore-admin-gateway/internal/enrich"
	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/javiersolis/bookstore-admin-gateway/internal/testutils"
	"github.com/javiersolis/bookstore-admin-gateway/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHandlerHistoryService(cart *gateway.MockCartClient, catalog *gateway.MockCatalogClient, authors *gateway.MockAuthorClient) *service.HistoryService {
	return service.NewHistoryService(cart, enrich.NewTitleCache(catalog), enrich.NewAuthorIndex(authors))
}

func setupCartTest() (*gateway.MockCartClient, *gateway.MockCatalogClient, *handlers.CartHandler) {
	mockCart := gateway.NewMockCartClient()
	mockCatalog := gateway.NewMockCatalogClient()
	cartHandler := handlers.NewCartHandler(service.NewCartService(mockCart, mockCatalog))

	return mockCart, mockCatalog, cartHandler
}

func TestGetCartHandler(t *testing.T) {
	t.Run("Success - Envelope Carries Display Total", func(t *testing.T) {
		// Arrange
		mockCart, mockCatalog, cartHandler := setupCartTest()

		order := &models.Order{
			Total: 0,
			Items: []models.OrderItem{
				{CatalogItemID: "a", Quantity: 1, UnitPrice: 10, LineTotal: 10},
				{CatalogItemID: "b", Quantity: 1, UnitPrice: 15.50, LineTotal: 15.50},
			},
		}
		mockCart.On("GetOrder", mock.Anything).Return(order, nil).Once()
		mockCatalog.On("GetBook", mock.Anything, mock.Anything).
			Return(nil, appErrors.NotFoundError("Not found")).Maybe()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, "ana", nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 25.50, data["display_total"])
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Upstream Error Surfaces As 502", func(t *testing.T) {
		// Arrange
		mockCart, _, cartHandler := setupCartTest()

		mockCart.On("GetOrder", mock.Anything).
			Return(nil, appErrors.UpstreamError("An error occurred. Please try again.")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/cart", nil, "ana", nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.GetCart()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		mockCart.AssertExpectations(t)
	})
}

func TestSetQuantityHandler(t *testing.T) {
	t.Run("Failure - Missing Item Id Rejected Before Any Call", func(t *testing.T) {
		// Arrange
		mockCart, _, cartHandler := setupCartTest()

		body, _ := json.Marshal(map[string]any{"quantity": 2})
		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items", bytes.NewBuffer(body), "ana", nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.SetQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCart.AssertNotCalled(t, "GetOrder", mock.Anything)
	})

	t.Run("Failure - Malformed Body", func(t *testing.T) {
		// Arrange
		mockCart, _, cartHandler := setupCartTest()

		req := testutils.CreateTestRequestWithContext(http.MethodPut, "/api/v1/cart/items", bytes.NewBufferString("{"), "ana", nil)
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.SetQuantity()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCart.AssertNotCalled(t, "GetOrder", mock.Anything)
	})
}

func TestRemoveItemHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockCart, _, cartHandler := setupCartTest()

		mockCart.On("DeleteItem", mock.Anything, "item-1").Return(nil).Once()
		mockCart.On("GetOrder", mock.Anything).
			Return(&models.Order{Items: []models.OrderItem{}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodDelete, "/api/v1/cart/items/item-1", nil, "ana",
			map[string]string{"id": "item-1"})
		recorder := httptest.NewRecorder()

		// Act
		cartHandler.RemoveItem()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		mockCart.AssertExpectations(t)
	})
}

func TestSearchPurchaseHandler(t *testing.T) {
	t.Run("Success - Missing Purchase Is A Neutral Notice", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		mockAuthors := gateway.NewMockAuthorClient()
		historyHandler := handlers.NewHistoryHandler(newHandlerHistoryService(mockCart, mockCatalog, mockAuthors))

		mockCart.On("HistoryByID", mock.Anything, int64(99)).
			Return(nil, appErrors.NotFoundError("Not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/purchases/search?id=99", nil, "ana", nil)
		recorder := httptest.NewRecorder()

		// Act
		historyHandler.SearchPurchase()(recorder, req)

		// Assert: no error banner, just an empty result with a message.
		assert.Equal(t, http.StatusOK, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Purchase not found", data["message"])
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Id Is Still A Validation Error", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		mockAuthors := gateway.NewMockAuthorClient()
		historyHandler := handlers.NewHistoryHandler(newHandlerHistoryService(mockCart, mockCatalog, mockAuthors))

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/purchases/search?id=abc", nil, "ana", nil)
		recorder := httptest.NewRecorder()

		// Act
		historyHandler.SearchPurchase()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetReceiptHandler(t *testing.T) {
	t.Run("Success - PDF Passed Through", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		mockAuthors := gateway.NewMockAuthorClient()
		historyHandler := handlers.NewHistoryHandler(newHandlerHistoryService(mockCart, mockCatalog, mockAuthors))

		pdf := []byte("%PDF-1.4 fake")
		mockCart.On("ReceiptPDF", mock.Anything, int64(5)).Return(pdf, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/purchases/5/receipt", nil, "ana",
			map[string]string{"id": "5"})
		recorder := httptest.NewRecorder()

		// Act
		historyHandler.GetReceipt()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/pdf", recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "compra_5.pdf")
		assert.Equal(t, pdf, recorder.Body.Bytes())
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Non-Numeric Id", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		mockAuthors := gateway.NewMockAuthorClient()
		historyHandler := handlers.NewHistoryHandler(newHandlerHistoryService(mockCart, mockCatalog, mockAuthors))

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/purchases/x/receipt", nil, "ana",
			map[string]string{"id": "x"})
		recorder := httptest.NewRecorder()

		// Act
		historyHandler.GetReceipt()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		mockCart.AssertNotCalled(t, "ReceiptPDF", mock.Anything, mock.Anything)
	})
}
