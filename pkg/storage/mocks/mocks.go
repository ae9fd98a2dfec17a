package mocks

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/stretchr/testify/mock"
)

// SettlementStore is a testify mock of the storage.SettlementStore interface.
type SettlementStore struct {
	mock.Mock
}

func (m *SettlementStore) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, bool, error) {
	args := m.Called(ctx, tx)
	if out := args.Get(0); out != nil {
		return out.(*models.Transaction), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *SettlementStore) GetListing(ctx context.Context, bookRef string) (*models.Listing, error) {
	args := m.Called(ctx, bookRef)
	if out := args.Get(0); out != nil {
		return out.(*models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettlementStore) IncrementSalesCount(ctx context.Context, bookRef string) error {
	return m.Called(ctx, bookRef).Error(0)
}

func (m *SettlementStore) AddEntitlement(ctx context.Context, ent *models.Entitlement) error {
	return m.Called(ctx, ent).Error(0)
}

func (m *SettlementStore) ListEntitlements(ctx context.Context, buyerRef string) ([]models.Entitlement, error) {
	args := m.Called(ctx, buyerRef)
	if out := args.Get(0); out != nil {
		return out.([]models.Entitlement), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettlementStore) CreditSeller(ctx context.Context, sellerRef, txID string, amount int64, sale models.SaleRecord) error {
	return m.Called(ctx, sellerRef, txID, amount, sale).Error(0)
}

func (m *SettlementStore) GetSellerLedger(ctx context.Context, sellerRef string) (*models.SellerLedger, error) {
	args := m.Called(ctx, sellerRef)
	if out := args.Get(0); out != nil {
		return out.(*models.SellerLedger), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettlementStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if out := args.Get(0); out != nil {
		return out.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettlementStore) ListPendingReferrals(ctx context.Context, referredUserID string) ([]models.Referral, error) {
	args := m.Called(ctx, referredUserID)
	if out := args.Get(0); out != nil {
		return out.([]models.Referral), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettlementStore) CompleteReferral(ctx context.Context, referralID string) error {
	return m.Called(ctx, referralID).Error(0)
}

// ApiStore is a testify mock of the storage.ApiStore interface.
type ApiStore struct {
	SettlementStore
}

func (m *ApiStore) GetTransactionByRef(ctx context.Context, gatewayRef string) (*models.Transaction, error) {
	args := m.Called(ctx, gatewayRef)
	if out := args.Get(0); out != nil {
		return out.(*models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApiStore) ListTransactionsByBuyer(ctx context.Context, buyerRef string) ([]models.Transaction, error) {
	args := m.Called(ctx, buyerRef)
	if out := args.Get(0); out != nil {
		return out.([]models.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}
