package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/cocobloom/storefront-backend/internal/promotions"
)

// Rules carries the shipping constants the calculator derives against.
type Rules struct {
	FreeShippingThreshold int
	FlatShippingFee       int
}

// DefaultRules returns the storefront's live shipping rules.
func DefaultRules() Rules {
	return Rules{FreeShippingThreshold: 399, FlatShippingFee: 39}
}

// Breakdown is fully derived from (subtotal, promo); it has no identity of
// its own and is recomputed on every read.
type Breakdown struct {
	Subtotal        int     `json:"subtotal"`
	Discount        int     `json:"discount"`
	Shipping        int     `json:"shipping"`
	TaxIncluded     int     `json:"tax_included"`
	Total           int     `json:"total"`
	FreeShipping    bool    `json:"free_shipping"`
	RemainingToFree int     `json:"remaining_to_free"`
	Progress        float64 `json:"free_shipping_progress"`
}

var (
	twenty     = decimal.NewFromInt(20)
	oneTwenty  = decimal.NewFromInt(120)
	oneHundred = decimal.NewFromInt(100)
)

// Quote derives the checkout breakdown. It is pure and never errors: a promo
// whose minimum is no longer met contributes nothing, so eligibility is
// re-checked on every call rather than only at apply time.
func Quote(subtotal int, promo *promotions.Promotion, rules Rules) Breakdown {
	if subtotal < 0 {
		subtotal = 0
	}

	discount := discountFor(subtotal, promo)
	afterDiscount := subtotal - discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	shipping := rules.FlatShippingFee
	if afterDiscount >= rules.FreeShippingThreshold {
		shipping = 0
	}
	// A free-shipping promo waives the fee below the general threshold, but
	// only while the order still meets the promo's own minimum.
	if promo != nil && promo.Kind == promotions.KindFreeShipping && afterDiscount >= promo.MinSubtotal {
		shipping = 0
	}

	// Prices are tax-inclusive; extract the embedded 20% VAT for display.
	taxIncluded := int(decimal.NewFromInt(int64(afterDiscount)).Mul(twenty).Div(oneTwenty).Round(0).IntPart())

	remaining := rules.FreeShippingThreshold - afterDiscount
	if remaining < 0 {
		remaining = 0
	}

	return Breakdown{
		Subtotal:        subtotal,
		Discount:        discount,
		Shipping:        shipping,
		TaxIncluded:     taxIncluded,
		Total:           afterDiscount + shipping,
		FreeShipping:    shipping == 0,
		RemainingToFree: remaining,
		Progress:        progress(afterDiscount, rules.FreeShippingThreshold),
	}
}

func discountFor(subtotal int, promo *promotions.Promotion) int {
	if promo == nil || !promo.Eligible(subtotal) {
		return 0
	}
	switch promo.Kind {
	case promotions.KindPercent:
		d := decimal.NewFromInt(int64(subtotal)).
			Mul(decimal.NewFromInt(int64(promo.Value))).
			Div(oneHundred).
			Floor()
		return int(d.IntPart())
	case promotions.KindFixed:
		if promo.Value > subtotal {
			return subtotal
		}
		return promo.Value
	case promotions.KindFreeShipping:
		return 0
	default:
		return 0
	}
}

func progress(afterDiscount, threshold int) float64 {
	if threshold <= 0 {
		return 1
	}
	p := float64(afterDiscount) / float64(threshold)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
