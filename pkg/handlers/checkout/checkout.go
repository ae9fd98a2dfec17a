package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/femi/bookmart-settlement/pkg/api"
	"github.com/femi/bookmart-settlement/pkg/gateway"
	"github.com/femi/bookmart-settlement/pkg/mapping"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/notify"
	"github.com/femi/bookmart-settlement/pkg/settlement"
)

// Settler is the settlement workflow as the handler sees it.
type Settler interface {
	Settle(ctx context.Context, result gateway.PaymentResult, intent *models.PurchaseIntent, buyerID string) (string, error)
}

// Handler handles the gateway callback that completes a checkout.
type Handler struct {
	Workflow  Settler
	Publisher notify.Publisher
}

// NewHandler creates a new checkout Handler.
func NewHandler(workflow Settler, publisher notify.Publisher) *Handler {
	if publisher == nil {
		publisher = &notify.NoOpPublisher{}
	}
	return &Handler{Workflow: workflow, Publisher: publisher}
}

// HandleCallback settles a completed checkout. The buyer identity arrives
// explicitly in the body; there is no ambient session state.
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	var cb api.CheckoutCallback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if cb.BuyerId == "" {
		http.Error(w, "buyer_id is required", http.StatusBadRequest)
		return
	}

	result := mapping.ToPaymentResult(&cb)
	intent := mapping.ToDomainIntent(&cb.Intent)

	txID, err := h.Workflow.Settle(r.Context(), result, intent, cb.BuyerId)
	if err != nil {
		h.writeError(w, result, err)
		return
	}

	// Best-effort dashboard push; the settlement already succeeded.
	msg := notify.Message{
		Type: notify.MessageTypeSettlement,
		Payload: notify.SettlementPayload{
			TransactionID: txID,
			BuyerRef:      cb.BuyerId,
			BookRef:       intent.BookRef,
			Amount:        intent.Amount,
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish settlement message", "transactionId", txID, "error", err)
	}

	writeJSON(w, http.StatusCreated, api.SettlementResponse{TransactionId: txID})
}

func (h *Handler) writeError(w http.ResponseWriter, result gateway.PaymentResult, err error) {
	var rejected *settlement.GatewayRejectedError
	var fatal *settlement.LedgerWriteFailedError

	switch {
	case errors.As(err, &rejected):
		// Nothing was written; the buyer may retry checkout.
		writeJSON(w, http.StatusUnprocessableEntity, api.SettlementResponse{Message: rejected.UserMessage()})
	case errors.Is(err, gateway.ErrValidationFailed):
		writeJSON(w, http.StatusBadRequest, api.SettlementResponse{Message: err.Error()})
	case errors.As(err, &fatal):
		// Money may be captured with no record of it. Surface the gateway
		// reference so support can reconcile; the buyer must not pay again.
		slog.Error("settlement fatal failure", "gatewayRef", fatal.GatewayRef, "error", err)
		writeJSON(w, http.StatusInternalServerError, api.SettlementResponse{
			Message:    fatal.UserMessage(),
			GatewayRef: fatal.GatewayRef,
		})
	default:
		slog.Error("settlement failed", "gatewayRef", result.Reference(), "error", err)
		http.Error(w, fmt.Sprintf("Failed to settle: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
