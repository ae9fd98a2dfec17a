package reconcile

import (
	"context"
	"fmt"

	"github.com/femi/bookmart-settlement/pkg/storage"
)

// Applier re-applies repair tasks against the record store. Every write it
// issues is idempotent, so redelivered SQS messages are harmless.
type Applier struct {
	Store storage.SettlementStore
}

// NewApplier creates a new Applier.
func NewApplier(store storage.SettlementStore) *Applier {
	return &Applier{Store: store}
}

// Apply re-executes the secondary write a task describes.
func (a *Applier) Apply(ctx context.Context, task Task) error {
	switch task.Kind {
	case TaskEntitlement:
		if task.Entitlement == nil {
			return fmt.Errorf("entitlement repair task for transaction %s has no entitlement", task.Transaction.Id)
		}
		return a.Store.AddEntitlement(ctx, task.Entitlement)

	case TaskSellerCredit:
		if task.Sale == nil {
			return fmt.Errorf("seller credit repair task for transaction %s has no sale record", task.Transaction.Id)
		}
		return a.Store.CreditSeller(ctx, task.Transaction.SellerRef, task.Transaction.Id, task.Transaction.SellerAmount, *task.Sale)

	case TaskSalesCount:
		return a.Store.IncrementSalesCount(ctx, task.Transaction.BookRef)

	default:
		return fmt.Errorf("unknown repair task kind %q", task.Kind)
	}
}
