package transactions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/femi/bookmart-settlement/pkg/api"
	"github.com/femi/bookmart-settlement/pkg/mapping"
	"github.com/femi/bookmart-settlement/pkg/storage"
)

// TransactionsHandler holds the dependencies for transaction-read handlers.
type TransactionsHandler struct {
	Store storage.TransactionReader
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store storage.TransactionReader) *TransactionsHandler {
	return &TransactionsHandler{Store: store}
}

// GetTransactionByRef handles the logic for retrieving a transaction by its
// gateway reference.
func (h *TransactionsHandler) GetTransactionByRef(w http.ResponseWriter, r *http.Request, gatewayRef string) {
	domainTx, err := h.Store.GetTransactionByRef(r.Context(), gatewayRef)
	if err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve transaction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiTx := mapping.ToApiTransaction(domainTx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListTransactionsByBuyer handles the logic for retrieving a buyer's
// purchase history.
func (h *TransactionsHandler) ListTransactionsByBuyer(w http.ResponseWriter, r *http.Request, buyerID string) {
	domainTxs, err := h.Store.ListTransactionsByBuyer(r.Context(), buyerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
