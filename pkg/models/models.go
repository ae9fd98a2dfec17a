package models

import (
	"time"
)

// TransactionStatus defines the possible states of a settlement transaction.
type TransactionStatus string

const (
	COMPLETED TransactionStatus = "COMPLETED"
	FAILED    TransactionStatus = "FAILED"
	CANCELLED TransactionStatus = "CANCELLED"
)

// Transaction is the append-only ledger record proving a purchase happened.
// It is keyed by the gateway-assigned reference so a retried callback cannot
// produce a second record. Transactions are never updated after creation.
type Transaction struct {
	Id           string            `dynamodbav:"id"`
	GatewayRef   string            `dynamodbav:"gateway_ref"`
	ProviderTxId string            `dynamodbav:"provider_tx_id,omitempty"`
	BuyerRef     string            `dynamodbav:"buyer_ref"`
	SellerRef    string            `dynamodbav:"seller_ref,omitempty"`
	BookRef      string            `dynamodbav:"book_ref"`
	Amount       int64             `dynamodbav:"amount"`
	SellerAmount int64             `dynamodbav:"seller_amount"`
	PlatformFee  int64             `dynamodbav:"platform_fee"`
	Status       TransactionStatus `dynamodbav:"status"`
	CreatedAt    time.Time         `dynamodbav:"created_at"`
}

// Listing is a purchasable book/document record. A listing is owned by
// exactly one seller, or by the platform itself when PlatformBound is set.
type Listing struct {
	Id            string `dynamodbav:"id"`
	SecondaryId   string `dynamodbav:"secondary_id,omitempty"`
	Title         string `dynamodbav:"title"`
	Author        string `dynamodbav:"author,omitempty"`
	CoverURL      string `dynamodbav:"cover_url,omitempty"`
	Price         int64  `dynamodbav:"price"`
	SellerRef     string `dynamodbav:"seller_ref,omitempty"`
	PlatformBound bool   `dynamodbav:"platform_bound"`
	SalesCount    int64  `dynamodbav:"sales_count"`
}

// Entitlement is the (buyer, book) edge recording that a buyer may access a
// listing. Book metadata is denormalized so the buyer's library renders
// without a listing read.
type Entitlement struct {
	BuyerRef       string    `dynamodbav:"buyer_ref"`
	BookRef        string    `dynamodbav:"book_ref"`
	TransactionRef string    `dynamodbav:"transaction_ref"`
	Title          string    `dynamodbav:"title"`
	Author         string    `dynamodbav:"author,omitempty"`
	CoverURL       string    `dynamodbav:"cover_url,omitempty"`
	PurchaseDate   time.Time `dynamodbav:"purchase_date"`
}

// SaleRecord is one entry in a seller's sales history, keyed under the
// seller by the transaction id.
type SaleRecord struct {
	BookRef  string    `dynamodbav:"book_ref" json:"book_ref"`
	BuyerRef string    `dynamodbav:"buyer_ref" json:"buyer_ref"`
	Amount   int64     `dynamodbav:"amount" json:"amount"`
	SoldAt   time.Time `dynamodbav:"sold_at" json:"sold_at"`
}

// SellerLedger holds a seller's running balance. The counters are
// monotonically non-decreasing and are only ever changed through atomic
// increments issued by the settlement workflow.
type SellerLedger struct {
	SellerRef      string                `dynamodbav:"seller_ref"`
	AccountBalance int64                 `dynamodbav:"account_balance"`
	TotalEarnings  int64                 `dynamodbav:"total_earnings"`
	BooksSold      int64                 `dynamodbav:"books_sold"`
	Sales          map[string]SaleRecord `dynamodbav:"sales,omitempty"`
}

// User is the slice of a marketplace user the settlement path needs.
type User struct {
	Id         string `dynamodbav:"id"`
	Email      string `dynamodbav:"email"`
	ReferredBy string `dynamodbav:"referred_by,omitempty"`
}

// ReferralStatus defines the states of a referral edge.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "PENDING"
	ReferralCompleted ReferralStatus = "COMPLETED"
)

// Referral links a referring user to a referred user. It transitions
// PENDING -> COMPLETED exactly once, on the referred user's first
// completed transaction.
type Referral struct {
	Id             string         `dynamodbav:"id"`
	ReferrerId     string         `dynamodbav:"referrer_id"`
	ReferredUserId string         `dynamodbav:"referred_user_id"`
	Status         ReferralStatus `dynamodbav:"status"`
	CreatedAt      time.Time      `dynamodbav:"created_at"`
	CompletedAt    *time.Time     `dynamodbav:"completed_at,omitempty"`
}

// BuyerContact is the contact block a buyer supplies at checkout.
type BuyerContact struct {
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DisplayName string `json:"display_name"`
}

// PurchaseIntent is the ephemeral checkout context. It is built when the
// checkout page loads and discarded once the gateway redirect completes.
// Amount is copied from the listing price at intent time.
type PurchaseIntent struct {
	BookRef      string       `json:"book_ref"`
	BuyerContact BuyerContact `json:"buyer_contact"`
	Amount       int64        `json:"amount"`
}
