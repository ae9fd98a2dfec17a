package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestApply(t *testing.T) {
	tx := models.Transaction{
		Id:           "tx-1",
		BuyerRef:     "buyer-1",
		SellerRef:    "seller-1",
		BookRef:      "book-1",
		SellerAmount: 1600,
	}

	t.Run("Entitlement", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		applier := NewApplier(store)

		ent := &models.Entitlement{BuyerRef: "buyer-1", BookRef: "book-1", TransactionRef: "tx-1"}
		store.On("AddEntitlement", mock.Anything, ent).Return(nil).Once()

		err := applier.Apply(context.Background(), Task{Kind: TaskEntitlement, Transaction: tx, Entitlement: ent})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Entitlement Missing Payload", func(t *testing.T) {
		applier := NewApplier(new(mocks.SettlementStore))

		err := applier.Apply(context.Background(), Task{Kind: TaskEntitlement, Transaction: tx})

		assert.Error(t, err)
	})

	t.Run("Seller Credit", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		applier := NewApplier(store)

		sale := &models.SaleRecord{BookRef: "book-1", BuyerRef: "buyer-1", Amount: 1600, SoldAt: time.Now()}
		store.On("CreditSeller", mock.Anything, "seller-1", "tx-1", int64(1600), *sale).Return(nil).Once()

		err := applier.Apply(context.Background(), Task{Kind: TaskSellerCredit, Transaction: tx, Sale: sale})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Sales Count", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		applier := NewApplier(store)

		store.On("IncrementSalesCount", mock.Anything, "book-1").Return(nil).Once()

		err := applier.Apply(context.Background(), Task{Kind: TaskSalesCount, Transaction: tx})

		assert.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		applier := NewApplier(new(mocks.SettlementStore))

		err := applier.Apply(context.Background(), Task{Kind: "mystery", Transaction: tx})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown repair task kind")
	})

	t.Run("Store Error Propagates", func(t *testing.T) {
		store := new(mocks.SettlementStore)
		applier := NewApplier(store)

		store.On("IncrementSalesCount", mock.Anything, "book-1").Return(errors.New("dynamo down")).Once()

		err := applier.Apply(context.Background(), Task{Kind: TaskSalesCount, Transaction: tx})

		assert.Error(t, err)
	})
}
