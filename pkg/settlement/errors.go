package settlement

import "fmt"

// GatewayRejectedError is returned when the gateway callback does not report
// a captured payment. Nothing has been written; the buyer may retry checkout.
type GatewayRejectedError struct {
	Status string
}

func (e *GatewayRejectedError) Error() string {
	if e.Status == "cancelled" {
		return "payment was cancelled"
	}
	return fmt.Sprintf("payment failed: %s", e.Status)
}

// UserMessage is the text the UI shows the buyer.
func (e *GatewayRejectedError) UserMessage() string {
	return e.Error()
}

// LedgerWriteFailedError is returned when the authoritative transaction
// record could not be written even though the gateway captured the payment.
// The gateway reference must reach the buyer so support can reconcile the
// charge; the buyer must not retry checkout.
type LedgerWriteFailedError struct {
	GatewayRef string
	Err        error
}

func (e *LedgerWriteFailedError) Error() string {
	return fmt.Sprintf("settlement failed for gateway reference %s: %v", e.GatewayRef, e.Err)
}

func (e *LedgerWriteFailedError) Unwrap() error {
	return e.Err
}

// UserMessage is the text the UI shows the buyer.
func (e *LedgerWriteFailedError) UserMessage() string {
	return fmt.Sprintf("your payment was received but could not be recorded; contact support with reference %s and do not pay again", e.GatewayRef)
}
