package split

// Revenue share rates for seller-owned listings, in percent. The platform
// fee is charged on top of the seller share; the two rates are intentionally
// independent of each other and do not sum to one hundred. Changing the
// policy means changing these two constants.
const (
	SellerRatePct      = 80
	PlatformFeeRatePct = 25
)

// Split is the division of a sale's price between the seller and the platform.
type Split struct {
	SellerAmount int64
	PlatformFee  int64
}

// Compute maps a listing price and ownership flag to a revenue split.
// Platform-bound listings keep the full price on the platform side with no
// fee. Pure and deterministic; price must be non-negative.
func Compute(price int64, platformBound bool) Split {
	if platformBound {
		return Split{SellerAmount: price, PlatformFee: 0}
	}
	return Split{
		SellerAmount: applyRate(price, SellerRatePct),
		PlatformFee:  applyRate(price, PlatformFeeRatePct),
	}
}

// applyRate computes round-half-up of price*pct/100 in pure integer
// arithmetic. Splitting the price into hundreds and a remainder keeps the
// result exact for every non-negative int64 price; going through float64
// drifts above 2^53 and multiplying first overflows.
func applyRate(price, pct int64) int64 {
	q, r := price/100, price%100
	return q*pct + (r*pct+50)/100
}
