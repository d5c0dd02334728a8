package models

// Identity document types accepted at checkout.
const (
	IDTypeRFC  = "rfc"
	IDTypeCURP = "curp"
)

// BuyerDetails is captured only at checkout time and validated before any
// network submission. Only the field matching IDType is required; the other
// one is cleared before the purchase payload is built.
type BuyerDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	IDType   string `json:"id_type"`
	RFC      string `json:"rfc,omitempty"`
	CURP     string `json:"curp,omitempty"`
}

// CheckoutState is the linear progression of the checkout flow.
type CheckoutState string

const (
	CheckoutReviewing         CheckoutState = "reviewing"
	CheckoutConfirmingDetails CheckoutState = "confirming_details"
	CheckoutSubmitting        CheckoutState = "submitting"
	CheckoutSuccess           CheckoutState = "success"
	CheckoutFailed            CheckoutState = "failed"
)
