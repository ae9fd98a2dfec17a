package storage

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// SellerLedgerStore defines the interface for a seller's running balance.
type SellerLedgerStore interface {
	// CreditSeller applies one sale to a seller's ledger: increments
	// books_sold by one, account_balance and total_earnings by amount, and
	// records the sale under the transaction id. The increments must be
	// atomic at the store level, never read-modify-write. Idempotent by
	// transaction id: re-crediting an already recorded sale is a no-op.
	CreditSeller(ctx context.Context, sellerRef, txID string, amount int64, sale models.SaleRecord) error

	// GetSellerLedger retrieves a seller's balance and sales history.
	GetSellerLedger(ctx context.Context, sellerRef string) (*models.SellerLedger, error)
}
