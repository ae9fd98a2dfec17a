package storage

import "errors"

// ErrListingNotFound is returned when a listing id does not resolve to a
// stored listing.
var ErrListingNotFound = errors.New("listing not found")

// ErrUserNotFound is returned when a user id does not resolve to a stored
// user.
var ErrUserNotFound = errors.New("user not found")

// ErrSellerNotFound is returned when a seller id does not resolve to a
// seller ledger.
var ErrSellerNotFound = errors.New("seller not found")

// ErrTransactionNotFound is returned when a gateway reference does not
// resolve to a stored transaction.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrReferralNotPending is returned when completing a referral that is not
// in the PENDING state. Callers treat it as "already completed".
var ErrReferralNotPending = errors.New("referral not in a pending state")
