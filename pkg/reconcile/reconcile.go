package reconcile

import (
	"context"

	"github.com/femi/bookmart-settlement/pkg/models"
)

// TaskKind identifies which secondary write a repair task re-applies.
type TaskKind string

const (
	TaskEntitlement  TaskKind = "entitlement"
	TaskSellerCredit TaskKind = "seller_credit"
	TaskSalesCount   TaskKind = "sales_count"
)

// Task is a lost secondary write, carrying everything needed to re-apply it
// without reading the original checkout context back.
type Task struct {
	Kind        TaskKind            `json:"kind"`
	Transaction models.Transaction  `json:"transaction"`
	Entitlement *models.Entitlement `json:"entitlement,omitempty"`
	Sale        *models.SaleRecord  `json:"sale,omitempty"`
}

// Enqueuer defines the interface for handing a repair task to the
// reconciliation worker.
type Enqueuer interface {
	// EnqueueRepair queues a repair task for asynchronous re-application.
	EnqueueRepair(ctx context.Context, task Task) error
}
