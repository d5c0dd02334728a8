package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/javiersolis/bookstore-admin-gateway/internal/errors"
	"github.com/javiersolis/bookstore-admin-gateway/internal/models"
	"github.com/javiersolis/bookstore-admin-gateway/pkg/sendgrid"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rfcPattern   = regexp.MustCompile(`(?i)^[A-Z&Ñ]{3,4}[0-9]{6}[A-Z0-9]{3}$`)
	curpPattern  = regexp.MustCompile(`(?i)^[A-Z]{4}[0-9]{6}[HM][A-Z]{5}[A-Z0-9]{2}$`)
)

// CheckoutService drives the short linear checkout progression: review the
// cart, capture and validate buyer details, submit. Validation failures
// never reach the network.
type CheckoutService struct {
	cart  *CartService
	email sendgrid.EmailService
}

func NewCheckoutService(cart *CartService, email sendgrid.EmailService) *CheckoutService {
	return &CheckoutService{cart: cart, email: email}
}

type CheckoutResult struct {
	State   models.CheckoutState `json:"state"`
	Message string               `json:"message"`
	Order   *models.Order        `json:"order"`
}

// Submit runs the whole progression for one request: review the current
// cart, gate on it being non-empty, validate buyer details, then purchase
// with the details attached. On failure the flow stays in ConfirmingDetails
// so the caller can correct and resubmit; nothing already upserted is
// rolled back.
func (s *CheckoutService) Submit(ctx context.Context, buyer models.BuyerDetails) (*CheckoutResult, error) {
	flow := NewCheckoutFlow()

	order, err := s.cart.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := flow.ConfirmDetails(order); err != nil {
		return nil, err
	}

	if err := ValidateBuyerDetails(&buyer); err != nil {
		return nil, err
	}

	normalizeBuyer(&buyer)

	if err := flow.BeginSubmit(); err != nil {
		return nil, err
	}

	order, err = s.cart.Purchase(ctx, buyer)
	if flow.Complete(err) == models.CheckoutFailed {
		return nil, err
	}

	s.sendConfirmation(ctx, buyer)

	return &CheckoutResult{
		State:   flow.State(),
		Message: "Purchase completed successfully",
		Order:   order,
	}, nil
}

// ValidateBuyerDetails applies the checkout rules in order, stopping at the
// first failure so the surfaced message always names the first offending
// field.
func ValidateBuyerDetails(buyer *models.BuyerDetails) error {
	if strings.TrimSpace(buyer.FullName) == "" {
		return errors.ValidationError("Full name is required")
	}

	if !emailPattern.MatchString(strings.TrimSpace(buyer.Email)) {
		return errors.ValidationError("Email is not valid")
	}

	if strings.TrimSpace(buyer.Address) == "" {
		return errors.ValidationError("Address is required")
	}

	switch buyer.IDType {
	case models.IDTypeRFC:
		if !rfcPattern.MatchString(strings.TrimSpace(buyer.RFC)) {
			return errors.ValidationError("RFC does not have a valid format")
		}
	case models.IDTypeCURP:
		if !curpPattern.MatchString(strings.TrimSpace(buyer.CURP)) {
			return errors.ValidationError("CURP does not have a valid format")
		}
	default:
		return errors.ValidationError("Select an identity document type")
	}

	return nil
}

// normalizeBuyer trims every field and clears the identity document that
// was not selected; it goes out as an empty string.
func normalizeBuyer(buyer *models.BuyerDetails) {
	buyer.FullName = strings.TrimSpace(buyer.FullName)
	buyer.Email = strings.TrimSpace(buyer.Email)
	buyer.Address = strings.TrimSpace(buyer.Address)
	buyer.RFC = strings.TrimSpace(buyer.RFC)
	buyer.CURP = strings.TrimSpace(buyer.CURP)

	switch buyer.IDType {
	case models.IDTypeRFC:
		buyer.CURP = ""
	case models.IDTypeCURP:
		buyer.RFC = ""
	}
}

// sendConfirmation is best-effort: a failed email never fails a purchase
// that already went through.
func (s *CheckoutService) sendConfirmation(ctx context.Context, buyer models.BuyerDetails) {
	if s.email == nil {
		return
	}

	subject := "Purchase confirmation"
	content := fmt.Sprintf("Hello %s,\n\nYour purchase has been completed. A receipt is available in your purchase history.\n", buyer.FullName)

	if err := s.email.Send(ctx, buyer.Email, subject, content, ""); err != nil {
		slog.Warn("Failed to send purchase confirmation email",
			slog.String("email", buyer.Email),
			slog.String("error", err.Error()),
		)
	}
}
