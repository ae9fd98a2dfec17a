package storage

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// ListingStore defines the interface for reading listings and bumping their
// sales counter.
type ListingStore interface {
	// GetListing retrieves a listing by its primary identifier.
	GetListing(ctx context.Context, bookRef string) (*models.Listing, error)

	// IncrementSalesCount atomically bumps the listing's sales counter.
	IncrementSalesCount(ctx context.Context, bookRef string) error
}
