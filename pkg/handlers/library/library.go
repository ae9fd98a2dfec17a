package library

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/femi/bookmart-settlement/pkg/api"
	"github.com/femi/bookmart-settlement/pkg/mapping"
	"github.com/femi/bookmart-settlement/pkg/storage"
)

// LibraryHandler holds the dependencies for buyer-library handlers.
type LibraryHandler struct {
	Store storage.EntitlementStore
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(store storage.EntitlementStore) *LibraryHandler {
	return &LibraryHandler{Store: store}
}

// ListEntitlements handles the logic for retrieving a buyer's library.
func (h *LibraryHandler) ListEntitlements(w http.ResponseWriter, r *http.Request, buyerID string) {
	domainEnts, err := h.Store.ListEntitlements(r.Context(), buyerID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve entitlements: %v", err), http.StatusInternalServerError)
		return
	}

	apiEnts := make([]*api.Entitlement, len(domainEnts))
	for i, ent := range domainEnts {
		apiEnts[i] = mapping.ToApiEntitlement(&ent)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEnts); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
