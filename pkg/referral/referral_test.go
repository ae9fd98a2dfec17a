package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage"
	"github.com/femi/bookmart-settlement/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCompleteForBuyer(t *testing.T) {
	t.Run("Completes Pending Referral", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "buyer-1").Return(&models.User{Id: "buyer-1", ReferredBy: "user-9"}, nil).Once()
		store.On("ListPendingReferrals", mock.Anything, "buyer-1").Return([]models.Referral{
			{Id: "ref-1", ReferrerId: "user-9", ReferredUserId: "buyer-1", Status: models.ReferralPending},
		}, nil).Once()
		store.On("CompleteReferral", mock.Anything, "ref-1").Return(nil).Once()

		assert.NoError(t, hook.CompleteForBuyer(context.Background(), "buyer-1"))
		store.AssertExpectations(t)
	})

	t.Run("NoOp Without ReferredBy", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "buyer-1").Return(&models.User{Id: "buyer-1"}, nil).Once()

		assert.NoError(t, hook.CompleteForBuyer(context.Background(), "buyer-1"))
		store.AssertNotCalled(t, "ListPendingReferrals", mock.Anything, mock.Anything)
		store.AssertExpectations(t)
	})

	t.Run("NoOp Without Pending Referrals", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "buyer-1").Return(&models.User{Id: "buyer-1", ReferredBy: "user-9"}, nil).Once()
		store.On("ListPendingReferrals", mock.Anything, "buyer-1").Return([]models.Referral{}, nil).Once()

		assert.NoError(t, hook.CompleteForBuyer(context.Background(), "buyer-1"))
		store.AssertNotCalled(t, "CompleteReferral", mock.Anything, mock.Anything)
	})

	t.Run("NoOp For Unknown Buyer", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "ghost").Return(nil, storage.ErrUserNotFound).Once()

		assert.NoError(t, hook.CompleteForBuyer(context.Background(), "ghost"))
	})

	t.Run("Already Completed Is Skipped", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "buyer-1").Return(&models.User{Id: "buyer-1", ReferredBy: "user-9"}, nil).Once()
		store.On("ListPendingReferrals", mock.Anything, "buyer-1").Return([]models.Referral{
			{Id: "ref-1", Status: models.ReferralPending},
			{Id: "ref-2", Status: models.ReferralPending},
		}, nil).Once()
		store.On("CompleteReferral", mock.Anything, "ref-1").Return(storage.ErrReferralNotPending).Once()
		store.On("CompleteReferral", mock.Anything, "ref-2").Return(nil).Once()

		assert.NoError(t, hook.CompleteForBuyer(context.Background(), "buyer-1"))
		store.AssertExpectations(t)
	})

	t.Run("Lookup Failure Surfaces", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "buyer-1").Return(nil, errors.New("dynamo down")).Once()

		assert.Error(t, hook.CompleteForBuyer(context.Background(), "buyer-1"))
	})

	t.Run("Completion Failure Surfaces", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		hook := NewHook(store, store)

		store.On("GetUser", mock.Anything, "buyer-1").Return(&models.User{Id: "buyer-1", ReferredBy: "user-9"}, nil).Once()
		store.On("ListPendingReferrals", mock.Anything, "buyer-1").Return([]models.Referral{
			{Id: "ref-1", Status: models.ReferralPending},
		}, nil).Once()
		store.On("CompleteReferral", mock.Anything, "ref-1").Return(errors.New("dynamo down")).Once()

		assert.Error(t, hook.CompleteForBuyer(context.Background(), "buyer-1"))
	})
}
