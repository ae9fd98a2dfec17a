package storage

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// EntitlementStore defines the interface for the buyer's purchased-books
// records.
type EntitlementStore interface {
	// AddEntitlement records that a buyer owns a book. Idempotent by
	// (buyer_ref, book_ref): re-adding an existing entitlement is a no-op.
	AddEntitlement(ctx context.Context, ent *models.Entitlement) error

	// ListEntitlements retrieves a buyer's library.
	ListEntitlements(ctx context.Context, buyerRef string) ([]models.Entitlement, error)
}
