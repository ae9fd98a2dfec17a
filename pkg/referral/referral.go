package referral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/femi/bookmart-settlement/pkg/storage"
)

// Hook marks a buyer's referral as fulfilled on their first completed
// purchase. It only ever moves referrals PENDING -> COMPLETED; re-running it
// for an already completed referral is a no-op.
type Hook struct {
	Users     storage.UserReader
	Referrals storage.ReferralStore
}

// NewHook creates a new Hook.
func NewHook(users storage.UserReader, referrals storage.ReferralStore) *Hook {
	return &Hook{Users: users, Referrals: referrals}
}

// CompleteForBuyer completes any pending referrals naming this buyer as the
// referred party. A buyer without a referredBy attribute, or without pending
// referrals, is a no-op.
func (h *Hook) CompleteForBuyer(ctx context.Context, buyerID string) error {
	user, err := h.Users.GetUser(ctx, buyerID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up buyer %s: %w", buyerID, err)
	}

	if user.ReferredBy == "" {
		return nil
	}

	pending, err := h.Referrals.ListPendingReferrals(ctx, buyerID)
	if err != nil {
		return fmt.Errorf("failed to list pending referrals for %s: %w", buyerID, err)
	}

	for _, ref := range pending {
		if err := h.Referrals.CompleteReferral(ctx, ref.Id); err != nil {
			if errors.Is(err, storage.ErrReferralNotPending) {
				// Lost a race with another completion; nothing to do.
				continue
			}
			return fmt.Errorf("failed to complete referral %s: %w", ref.Id, err)
		}
		slog.Info("referral completed", "referralId", ref.Id, "referrerId", ref.ReferrerId, "buyerId", buyerID)
	}

	return nil
}
