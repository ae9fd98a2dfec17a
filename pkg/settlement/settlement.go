package settlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/femi/bookmart-settlement/pkg/gateway"
	"github.com/femi/bookmart-settlement/pkg/models"
	"github.com/femi/bookmart-settlement/pkg/reconcile"
	"github.com/femi/bookmart-settlement/pkg/split"
	"github.com/femi/bookmart-settlement/pkg/storage"
)

// DefaultCallTimeout bounds every remote call the workflow makes.
const DefaultCallTimeout = 10 * time.Second

// ReferralCompleter is the referral-completion side effect fired after the
// transaction write. Errors never block the settlement success path.
type ReferralCompleter interface {
	CompleteForBuyer(ctx context.Context, buyerID string) error
}

// Workflow converts one successful payment-gateway callback into a
// consistent set of durable records, crediting the correct parties exactly
// once. The transaction write is authoritative; the entitlement, seller
// ledger, and sales counter updates are best-effort and are queued for
// reconciliation when they fail.
type Workflow struct {
	Store     storage.SettlementStore
	Repairs   reconcile.Enqueuer
	Referrals ReferralCompleter

	// CallTimeout bounds each remote call. Zero means DefaultCallTimeout.
	CallTimeout time.Duration
}

// NewWorkflow creates a settlement workflow. Repairs and referrals may be
// nil, which disables queuing of failed secondary writes and the referral
// side effect respectively.
func NewWorkflow(store storage.SettlementStore, repairs reconcile.Enqueuer, referrals ReferralCompleter) *Workflow {
	return &Workflow{Store: store, Repairs: repairs, Referrals: referrals}
}

// Settle records a completed checkout. On success it returns the id of the
// authoritative transaction record. A retried gateway callback for an
// already settled reference returns the original transaction id.
//
// Once the transaction write has started the workflow runs to completion;
// secondary failures are logged and queued, never surfaced to the buyer.
func (w *Workflow) Settle(ctx context.Context, result gateway.PaymentResult, intent *models.PurchaseIntent, buyerID string) (string, error) {
	if !result.Successful() {
		return "", &GatewayRejectedError{Status: result.Status}
	}
	if err := gateway.ValidateResult(result); err != nil {
		// The gateway captured the payment but the callback is too mangled to
		// key a transaction. Retrying checkout would double-charge, so this is
		// a fatal settle failure, not a rejection.
		return "", &LedgerWriteFailedError{GatewayRef: result.Reference(), Err: err}
	}
	if err := gateway.ValidateIntent(intent); err != nil {
		return "", err
	}

	listing, err := w.getListing(ctx, intent.BookRef)
	if err != nil {
		// Payment is captured but nothing has been recorded; treat exactly
		// like a failed ledger write so the gateway reference reaches support.
		return "", &LedgerWriteFailedError{GatewayRef: result.Reference(), Err: err}
	}

	revenue := split.Compute(listing.Price, listing.PlatformBound)

	tx := &models.Transaction{
		GatewayRef:   result.TxRef,
		ProviderTxId: result.TransactionId,
		BuyerRef:     buyerID,
		SellerRef:    listing.SellerRef,
		BookRef:      listing.Id,
		Amount:       intent.Amount,
		SellerAmount: revenue.SellerAmount,
		PlatformFee:  revenue.PlatformFee,
		Status:       models.COMPLETED,
	}

	stored, created, err := w.createTransaction(ctx, tx)
	if err != nil {
		return "", &LedgerWriteFailedError{GatewayRef: result.Reference(), Err: err}
	}
	if !created {
		slog.Info("duplicate gateway callback, already settled", "gatewayRef", result.TxRef, "transactionId", stored.Id)
		return stored.Id, nil
	}

	// The purchase is durable from here on. Everything below is best-effort.
	w.completeReferral(ctx, buyerID)
	w.recordEntitlements(ctx, stored, listing)
	w.creditSeller(ctx, stored, listing)
	w.bumpSalesCount(ctx, stored)

	return stored.Id, nil
}

func (w *Workflow) getListing(ctx context.Context, bookRef string) (*models.Listing, error) {
	ctx, cancel := w.callContext(ctx)
	defer cancel()
	return w.Store.GetListing(ctx, bookRef)
}

func (w *Workflow) createTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, bool, error) {
	ctx, cancel := w.callContext(ctx)
	defer cancel()
	return w.Store.CreateTransaction(ctx, tx)
}

func (w *Workflow) completeReferral(ctx context.Context, buyerID string) {
	if w.Referrals == nil {
		return
	}
	ctx, cancel := w.callContext(ctx)
	defer cancel()
	if err := w.Referrals.CompleteForBuyer(ctx, buyerID); err != nil {
		slog.Error("referral completion failed", "buyerId", buyerID, "error", err)
	}
}

// recordEntitlements adds the buyer's entitlement for the purchased listing,
// and an alias entry under the listing's secondary identifier when it has
// one, so lookups under either key succeed.
func (w *Workflow) recordEntitlements(ctx context.Context, tx *models.Transaction, listing *models.Listing) {
	ent := &models.Entitlement{
		BuyerRef:       tx.BuyerRef,
		BookRef:        listing.Id,
		TransactionRef: tx.Id,
		Title:          listing.Title,
		Author:         listing.Author,
		CoverURL:       listing.CoverURL,
		PurchaseDate:   tx.CreatedAt,
	}
	w.addEntitlement(ctx, tx, ent)

	if listing.SecondaryId != "" && listing.SecondaryId != listing.Id {
		alias := *ent
		alias.BookRef = listing.SecondaryId
		w.addEntitlement(ctx, tx, &alias)
	}
}

func (w *Workflow) addEntitlement(ctx context.Context, tx *models.Transaction, ent *models.Entitlement) {
	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	if err := w.Store.AddEntitlement(callCtx, ent); err != nil {
		slog.Error("entitlement write failed", "transactionId", tx.Id, "buyerRef", ent.BuyerRef, "bookRef", ent.BookRef, "error", err)
		w.enqueueRepair(ctx, reconcile.Task{Kind: reconcile.TaskEntitlement, Transaction: *tx, Entitlement: ent})
	}
}

func (w *Workflow) creditSeller(ctx context.Context, tx *models.Transaction, listing *models.Listing) {
	if listing.SellerRef == "" {
		return
	}
	sale := models.SaleRecord{
		BookRef:  listing.Id,
		BuyerRef: tx.BuyerRef,
		Amount:   tx.SellerAmount,
		SoldAt:   tx.CreatedAt,
	}
	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	if err := w.Store.CreditSeller(callCtx, listing.SellerRef, tx.Id, tx.SellerAmount, sale); err != nil {
		slog.Error("seller ledger credit failed", "transactionId", tx.Id, "sellerRef", listing.SellerRef, "error", err)
		w.enqueueRepair(ctx, reconcile.Task{Kind: reconcile.TaskSellerCredit, Transaction: *tx, Sale: &sale})
	}
}

func (w *Workflow) bumpSalesCount(ctx context.Context, tx *models.Transaction) {
	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	if err := w.Store.IncrementSalesCount(callCtx, tx.BookRef); err != nil {
		slog.Error("sales counter increment failed", "transactionId", tx.Id, "bookRef", tx.BookRef, "error", err)
		w.enqueueRepair(ctx, reconcile.Task{Kind: reconcile.TaskSalesCount, Transaction: *tx})
	}
}

func (w *Workflow) enqueueRepair(ctx context.Context, task reconcile.Task) {
	if w.Repairs == nil {
		return
	}
	callCtx, cancel := w.callContext(ctx)
	defer cancel()
	if err := w.Repairs.EnqueueRepair(callCtx, task); err != nil {
		// The transaction record is still the source of truth; a scan over
		// transactions can rebuild what this task would have repaired.
		slog.Error("failed to enqueue repair task", "kind", task.Kind, "transactionId", task.Transaction.Id, "error", err)
	}
}

func (w *Workflow) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := w.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// UserMessage maps a settlement error to the text a screen should show.
// Fatal errors come back from Settle; anything else means the charge
// succeeded even if parts of the library or ledger lag behind.
func UserMessage(err error) string {
	type messager interface{ UserMessage() string }
	if m, ok := err.(messager); ok {
		return m.UserMessage()
	}
	if err != nil {
		return fmt.Sprintf("settlement error: %v", err)
	}
	return ""
}
