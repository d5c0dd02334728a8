package service_test

import (
	"context"
	"testing"

	appErrors "github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/gateway"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	service "github.com/javiersolis/bookstore-admin-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validBuyer() models.BuyerDetails {
	return models.BuyerDetails{
		FullName: "Ana Pérez",
		Email:    "ana@example.com",
		Address:  "Av. Reforma 100, CDMX",
		IDType:   models.IDTypeRFC,
		RFC:      "ABCD800101XYZ",
	}
}

func TestValidateBuyerDetails(t *testing.T) {
	t.Run("Success - RFC Buyer", func(t *testing.T) {
		buyer := validBuyer()

		assert.NoError(t, service.ValidateBuyerDetails(&buyer))
	})

	t.Run("Success - CURP Buyer", func(t *testing.T) {
		buyer := validBuyer()
		buyer.IDType = models.IDTypeCURP
		buyer.RFC = ""
		buyer.CURP = "ABCD800101HDFLLL09"

		assert.NoError(t, service.ValidateBuyerDetails(&buyer))
	})

	t.Run("Failure - Name Checked Before Email", func(t *testing.T) {
		buyer := validBuyer()
		buyer.FullName = "   "
		buyer.Email = "not-an-email"

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, "Full name is required", appErr.Message)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		buyer := validBuyer()
		buyer.Email = "ana@localhost"

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "Email is not valid", appErr.Message)
	})

	t.Run("Failure - Email Checked Before Address", func(t *testing.T) {
		buyer := validBuyer()
		buyer.Email = "bad"
		buyer.Address = ""

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "Email is not valid", appErr.Message)
	})

	t.Run("Failure - Missing Address", func(t *testing.T) {
		buyer := validBuyer()
		buyer.Address = " "

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "Address is required", appErr.Message)
	})

	t.Run("Failure - RFC Too Short", func(t *testing.T) {
		buyer := validBuyer()
		buyer.RFC = "AB800101XYZ"

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "RFC does not have a valid format", appErr.Message)
	})

	t.Run("Success - Lowercase RFC Accepted", func(t *testing.T) {
		buyer := validBuyer()
		buyer.RFC = "abcd800101xyz"

		assert.NoError(t, service.ValidateBuyerDetails(&buyer))
	})

	t.Run("Failure - CURP Missing Sex Marker", func(t *testing.T) {
		buyer := validBuyer()
		buyer.IDType = models.IDTypeCURP
		buyer.CURP = "ABCD800101XDFLLL09"

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "CURP does not have a valid format", appErr.Message)
	})

	t.Run("Failure - No Identity Document Type", func(t *testing.T) {
		buyer := validBuyer()
		buyer.IDType = ""

		err := service.ValidateBuyerDetails(&buyer)

		assert.Error(t, err)
		appErr, _ := appErrors.IsAppError(err)
		assert.Equal(t, "Select an identity document type", appErr.Message)
	})
}

func TestCheckoutSubmit(t *testing.T) {
	ctx := context.Background()
	cartItems := []models.OrderItem{
		{CatalogItemID: "item-1", Title: "item-1", Quantity: 1, UnitPrice: 20, LineTotal: 20},
	}

	t.Run("Success - Purchase Goes Through", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		cartService := service.NewCartService(mockCart, mockCatalog)
		checkoutService := service.NewCheckoutService(cartService, nil)

		mockCatalog.On("GetBook", mock.Anything, "item-1").
			Return(&models.Book{ID: "item-1", Title: "item-1"}, nil).Maybe()
		mockCart.On("GetOrder", ctx).Return(&models.Order{Total: 20, Items: cartItems}, nil).Twice()
		mockCart.On("Purchase", ctx, mock.MatchedBy(func(sub gateway.PurchaseSubmission) bool {
			return sub.Buyer.CURP == "" && sub.Buyer.RFC == "ABCD800101XYZ"
		})).Return(nil).Once()
		mockCart.On("GetOrder", ctx).Return(&models.Order{Items: []models.OrderItem{}}, nil).Once()

		// Act
		result, err := checkoutService.Submit(ctx, validBuyer())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, models.CheckoutSuccess, result.State)
		assert.Empty(t, result.Order.Items)
		mockCart.AssertExpectations(t)
	})

	t.Run("Success - Stray CURP Cleared For RFC Buyer", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		cartService := service.NewCartService(mockCart, mockCatalog)
		checkoutService := service.NewCheckoutService(cartService, nil)

		buyer := validBuyer()
		buyer.CURP = "ABCD800101HDFLLL09"

		mockCatalog.On("GetBook", mock.Anything, "item-1").
			Return(&models.Book{ID: "item-1", Title: "item-1"}, nil).Maybe()
		mockCart.On("GetOrder", ctx).Return(&models.Order{Total: 20, Items: cartItems}, nil).Twice()
		mockCart.On("Purchase", ctx, mock.MatchedBy(func(sub gateway.PurchaseSubmission) bool {
			return sub.Buyer.CURP == ""
		})).Return(nil).Once()
		mockCart.On("GetOrder", ctx).Return(&models.Order{Items: []models.OrderItem{}}, nil).Once()

		// Act
		_, err := checkoutService.Submit(ctx, buyer)

		// Assert
		assert.NoError(t, err)
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Empty Cart Blocks Checkout", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		cartService := service.NewCartService(mockCart, mockCatalog)
		checkoutService := service.NewCheckoutService(cartService, nil)

		mockCart.On("GetOrder", ctx).Return(&models.Order{Items: []models.OrderItem{}}, nil).Once()

		// Act
		result, err := checkoutService.Submit(ctx, validBuyer())

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, "The cart is empty", appErr.Message)
		mockCart.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything)
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Invalid Buyer Never Reaches The Network", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		cartService := service.NewCartService(mockCart, mockCatalog)
		checkoutService := service.NewCheckoutService(cartService, nil)

		buyer := validBuyer()
		buyer.RFC = "bad"

		mockCatalog.On("GetBook", mock.Anything, "item-1").
			Return(&models.Book{ID: "item-1", Title: "item-1"}, nil).Maybe()
		mockCart.On("GetOrder", ctx).Return(&models.Order{Total: 20, Items: cartItems}, nil).Once()

		// Act
		result, err := checkoutService.Submit(ctx, buyer)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		mockCart.AssertNotCalled(t, "Purchase", mock.Anything, mock.Anything)
		mockCart.AssertExpectations(t)
	})

	t.Run("Failure - Submission Error Propagates", func(t *testing.T) {
		// Arrange
		mockCart := gateway.NewMockCartClient()
		mockCatalog := gateway.NewMockCatalogClient()
		cartService := service.NewCartService(mockCart, mockCatalog)
		checkoutService := service.NewCheckoutService(cartService, nil)

		mockCatalog.On("GetBook", mock.Anything, "item-1").
			Return(&models.Book{ID: "item-1", Title: "item-1"}, nil).Maybe()
		mockCart.On("GetOrder", ctx).Return(&models.Order{Total: 20, Items: cartItems}, nil).Twice()
		mockCart.On("Purchase", ctx, mock.Anything).
			Return(appErrors.UpstreamError("An error occurred. Please try again.")).Once()

		// Act
		result, err := checkoutService.Submit(ctx, validBuyer())

		// Assert
		assert.Error(t, err)
		assert.Nil(t, result)
		mockCart.AssertExpectations(t)
	})
}

func TestCheckoutFlow(t *testing.T) {
	order := &models.Order{Items: []models.OrderItem{{CatalogItemID: "a"}}}

	t.Run("Linear Progression", func(t *testing.T) {
		flow := service.NewCheckoutFlow()

		assert.Equal(t, models.CheckoutReviewing, flow.State())
		assert.NoError(t, flow.ConfirmDetails(order))
		assert.Equal(t, models.CheckoutConfirmingDetails, flow.State())
		assert.NoError(t, flow.BeginSubmit())
		assert.Equal(t, models.CheckoutSubmitting, flow.State())
		assert.Equal(t, models.CheckoutSuccess, flow.Complete(nil))
	})

	t.Run("Failed Submission Returns To Confirming", func(t *testing.T) {
		flow := service.NewCheckoutFlow()

		assert.NoError(t, flow.ConfirmDetails(order))
		assert.NoError(t, flow.BeginSubmit())
		assert.Equal(t, models.CheckoutFailed, flow.Complete(appErrors.UpstreamError("boom")))
		assert.Equal(t, models.CheckoutConfirmingDetails, flow.State())

		// A corrected retry can submit again without restarting the flow.
		assert.NoError(t, flow.BeginSubmit())
	})

	t.Run("Cannot Submit Before Confirming", func(t *testing.T) {
		flow := service.NewCheckoutFlow()

		assert.Error(t, flow.BeginSubmit())
	})

	t.Run("Empty Cart Cannot Be Confirmed", func(t *testing.T) {
		flow := service.NewCheckoutFlow()

		assert.Error(t, flow.ConfirmDetails(&models.Order{}))
		assert.Equal(t, models.CheckoutReviewing, flow.State())
	})
}
