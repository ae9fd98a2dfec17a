package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// Callback statuses as delivered by the hosted checkout widget.
const (
	StatusSuccessful = "successful"
	StatusCancelled  = "cancelled"
)

// PaymentResult is the payload the gateway posts back after the buyer
// finishes (or abandons) the hosted checkout widget.
type PaymentResult struct {
	Status        string `json:"status"`
	TransactionId string `json:"transaction_id"`
	TxRef         string `json:"tx_ref"`
	FlwRef        string `json:"flw_ref"`
	PaymentType   string `json:"payment_type"`
}

// Successful reports whether the gateway captured the payment. Only the
// literal "successful" status is payable.
func (p PaymentResult) Successful() bool {
	return p.Status == StatusSuccessful
}

// Cancelled reports whether the buyer abandoned the checkout widget.
func (p PaymentResult) Cancelled() bool {
	return p.Status == StatusCancelled
}

// Reference returns the gateway-assigned reference a support agent would
// use to locate the charge, preferring the provider's own reference.
func (p PaymentResult) Reference() string {
	if p.FlwRef != "" {
		return p.FlwRef
	}
	return p.TxRef
}

// ErrMissingReference is returned when a successful callback carries no
// usable transaction reference.
var ErrMissingReference = errors.New("gateway callback has no tx_ref")

// ValidateResult checks that a callback payload is well-formed enough to
// settle against.
func ValidateResult(p PaymentResult) error {
	if p.Successful() && p.TxRef == "" {
		return ErrMissingReference
	}
	return nil
}

// ValidateIntent checks the buyer-supplied checkout context before the
// gateway widget is ever invoked.
func ValidateIntent(intent *models.PurchaseIntent) error {
	var missing []string
	if strings.TrimSpace(intent.BuyerContact.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(intent.BuyerContact.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(intent.BuyerContact.DisplayName) == "" {
		missing = append(missing, "display_name")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(missing, ", "))
	}
	if intent.BookRef == "" {
		return fmt.Errorf("%w: book_ref", ErrValidationFailed)
	}
	if intent.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidationFailed)
	}
	return nil
}

// ErrValidationFailed is returned when a purchase intent is missing required
// buyer contact fields. It is caught before the gateway is invoked.
var ErrValidationFailed = errors.New("invalid purchase intent")
