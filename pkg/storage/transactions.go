package storage

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransactionByRef retrieves a transaction by its gateway reference.
	GetTransactionByRef(ctx context.Context, gatewayRef string) (*models.Transaction, error)

	// ListTransactionsByBuyer retrieves all transactions for a buyer.
	ListTransactionsByBuyer(ctx context.Context, buyerRef string) ([]models.Transaction, error)
}

// TransactionWriter defines the interface for appending transactions.
// Transactions are append-only; there is no update or delete.
type TransactionWriter interface {
	// CreateTransaction writes a new transaction keyed by its gateway
	// reference. If a transaction with the same reference already exists the
	// stored record is returned instead and the boolean is false, so a
	// retried gateway callback settles exactly once.
	CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, bool, error)
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
