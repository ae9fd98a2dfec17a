// Package api holds the wire models for the HTTP surface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// BuyerContact is the contact block collected at checkout.
type BuyerContact struct {
	Email       openapi_types.Email `json:"email"`
	Phone       string              `json:"phone"`
	DisplayName string              `json:"display_name"`
}

// PurchaseIntent is the checkout context echoed back with the gateway
// callback.
type PurchaseIntent struct {
	BookRef      string       `json:"book_ref"`
	BuyerContact BuyerContact `json:"buyer_contact"`
	Amount       int64        `json:"amount"`
}

// CheckoutCallback is the body POSTed to the settlement webhook once the
// gateway redirect completes.
type CheckoutCallback struct {
	Status        string         `json:"status"`
	TransactionId string         `json:"transaction_id"`
	TxRef         string         `json:"tx_ref"`
	FlwRef        string         `json:"flw_ref"`
	PaymentType   string         `json:"payment_type"`
	BuyerId       string         `json:"buyer_id"`
	Intent        PurchaseIntent `json:"intent"`
}

// SettlementResponse is returned by the settlement webhook.
type SettlementResponse struct {
	TransactionId string `json:"transaction_id,omitempty"`
	Message       string `json:"message,omitempty"`
	GatewayRef    string `json:"gateway_ref,omitempty"`
}

// Transaction is the API model of a settled purchase.
type Transaction struct {
	Id           string    `json:"id"`
	GatewayRef   string    `json:"gateway_ref"`
	BuyerRef     string    `json:"buyer_ref"`
	SellerRef    string    `json:"seller_ref,omitempty"`
	BookRef      string    `json:"book_ref"`
	Amount       int64     `json:"amount"`
	SellerAmount int64     `json:"seller_amount"`
	PlatformFee  int64     `json:"platform_fee"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// Entitlement is the API model of one book in a buyer's library.
type Entitlement struct {
	BookRef        string    `json:"book_ref"`
	TransactionRef string    `json:"transaction_ref"`
	Title          string    `json:"title"`
	Author         string    `json:"author,omitempty"`
	CoverURL       string    `json:"cover_url,omitempty"`
	PurchaseDate   time.Time `json:"purchase_date"`
}

// SaleRecord is the API model of one entry in a seller's sales history.
type SaleRecord struct {
	TransactionId string    `json:"transaction_id"`
	BookRef       string    `json:"book_ref"`
	BuyerRef      string    `json:"buyer_ref"`
	Amount        int64     `json:"amount"`
	SoldAt        time.Time `json:"sold_at"`
}

// SellerLedger is the API model of a seller's balance and history.
type SellerLedger struct {
	SellerRef      string       `json:"seller_ref"`
	AccountBalance int64        `json:"account_balance"`
	TotalEarnings  int64        `json:"total_earnings"`
	BooksSold      int64        `json:"books_sold"`
	Sales          []SaleRecord `json:"sales"`
}
