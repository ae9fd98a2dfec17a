package storage

// SettlementStore defines the privileged interface for the settlement
// workflow. It is the only surface allowed to append transactions and mutate
// seller balances; read-only components should depend on ApiStore instead.
type SettlementStore interface {
	TransactionWriter
	ListingStore
	EntitlementStore
	SellerLedgerStore
	UserReader
	ReferralStore
}
