package sellers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/femi/bookmart-settlement/pkg/mapping"
	"github.com/femi/bookmart-settlement/pkg/storage"
)

// SellersHandler holds the dependencies for seller-dashboard handlers.
type SellersHandler struct {
	Store storage.SellerLedgerStore
}

// NewSellersHandler creates a new SellersHandler.
func NewSellersHandler(store storage.SellerLedgerStore) *SellersHandler {
	return &SellersHandler{Store: store}
}

// GetLedger handles the logic for retrieving a seller's balance and sales
// history.
func (h *SellersHandler) GetLedger(w http.ResponseWriter, r *http.Request, sellerID string) {
	ledger, err := h.Store.GetSellerLedger(r.Context(), sellerID)
	if err != nil {
		if errors.Is(err, storage.ErrSellerNotFound) {
			http.Error(w, "Seller not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve seller ledger: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiLedger := mapping.ToApiSellerLedger(ledger)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiLedger); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
