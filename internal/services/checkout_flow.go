package service

import (
	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
)

// CheckoutFlow is the linear progression Reviewing → ConfirmingDetails →
// Submitting → {Success | Failed}. Transitions only ever move forward,
// except that a failed submission returns to ConfirmingDetails so the buyer
// can correct and retry.
type CheckoutFlow struct {
	state models.CheckoutState
}

func NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{state: models.CheckoutReviewing}
}

func (f *CheckoutFlow) State() models.CheckoutState {
	return f.state
}

// ConfirmDetails moves from Reviewing to ConfirmingDetails. An empty cart
// cannot be checked out.
func (f *CheckoutFlow) ConfirmDetails(order *models.Order) error {
	if f.state != models.CheckoutReviewing {
		return errors.BadRequestError("Checkout is not reviewing the cart")
	}

	if order == nil || len(order.Items) == 0 {
		return errors.BadRequestError("The cart is empty")
	}

	f.state = models.CheckoutConfirmingDetails

	return nil
}

// BeginSubmit moves to Submitting once buyer details passed validation.
func (f *CheckoutFlow) BeginSubmit() error {
	if f.state != models.CheckoutConfirmingDetails {
		return errors.BadRequestError("Buyer details have not been confirmed")
	}

	f.state = models.CheckoutSubmitting

	return nil
}

// Complete ends the flow. A failed submission goes back to
// ConfirmingDetails, not to a terminal state: the buyer corrects and
// retries, and nothing already applied to the cart is rolled back.
func (f *CheckoutFlow) Complete(err error) models.CheckoutState {
	if err != nil {
		f.state = models.CheckoutConfirmingDetails

		return models.CheckoutFailed
	}

	f.state = models.CheckoutSuccess

	return f.state
}
