package storage

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// UserReader defines the interface for reading user records.
type UserReader interface {
	// GetUser retrieves a user by id.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// ReferralStore defines the interface for referral edges.
type ReferralStore interface {
	// ListPendingReferrals retrieves the pending referrals naming this user
	// as the referred party.
	ListPendingReferrals(ctx context.Context, referredUserID string) ([]models.Referral, error)

	// CompleteReferral transitions a referral from PENDING to COMPLETED,
	// recording the completion time. Applying it to an already completed
	// referral is a no-op.
	CompleteReferral(ctx context.Context, referralID string) error
}
