package handlers

import (
	"net/http"

	"github.com/femi/bookmart-settlement/pkg/handlers/checkout"
	"github.com/femi/bookmart-settlement/pkg/handlers/library"
	"github.com/femi/bookmart-settlement/pkg/handlers/sellers"
	"github.com/femi/bookmart-settlement/pkg/handlers/transactions"
	"github.com/femi/bookmart-settlement/pkg/notify"
	"github.com/femi/bookmart-settlement/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// ApiHandler bundles the per-resource handlers behind one router.
type ApiHandler struct {
	Checkout     *checkout.Handler
	Library      *library.LibraryHandler
	Sellers      *sellers.SellersHandler
	Transactions *transactions.TransactionsHandler
}

// NewApiHandler creates a new ApiHandler with its dependencies.
func NewApiHandler(workflow checkout.Settler, store storage.ApiStore, publisher notify.Publisher) *ApiHandler {
	return &ApiHandler{
		Checkout:     checkout.NewHandler(workflow, publisher),
		Library:      library.NewLibraryHandler(store),
		Sellers:      sellers.NewSellersHandler(store),
		Transactions: transactions.NewTransactionsHandler(store),
	}
}

// Routes mounts all handlers on the router.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Post("/checkout/webhook", h.Checkout.HandleCallback)
	r.Get("/buyers/{buyerId}/entitlements", func(w http.ResponseWriter, r *http.Request) {
		h.Library.ListEntitlements(w, r, chi.URLParam(r, "buyerId"))
	})
	r.Get("/buyers/{buyerId}/transactions", func(w http.ResponseWriter, r *http.Request) {
		h.Transactions.ListTransactionsByBuyer(w, r, chi.URLParam(r, "buyerId"))
	})
	r.Get("/sellers/{sellerId}/ledger", func(w http.ResponseWriter, r *http.Request) {
		h.Sellers.GetLedger(w, r, chi.URLParam(r, "sellerId"))
	})
	r.Get("/transactions/{gatewayRef}", func(w http.ResponseWriter, r *http.Request) {
		h.Transactions.GetTransactionByRef(w, r, chi.URLParam(r, "gatewayRef"))
	})
}
