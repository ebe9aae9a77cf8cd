package promotions

import (
	"strings"

	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

// Kind is a closed tagged variant; the pricing calculator handles every case.
type Kind string

const (
	KindPercent      Kind = "percent"
	KindFixed        Kind = "fixed"
	KindFreeShipping Kind = "free_shipping"
)

// Promotion is one static promo rule. Value carries percentage points for
// percent, whole dirhams for fixed, and is unused for free_shipping.
type Promotion struct {
	Code        string `json:"code"`
	Kind        Kind   `json:"kind"`
	Value       int    `json:"value"`
	MinSubtotal int    `json:"min_subtotal"`
}

// Eligible reports whether the promotion applies at the given subtotal.
func (p Promotion) Eligible(subtotal int) bool {
	return subtotal >= p.MinSubtotal
}

// Catalog holds the static promo rule set, keyed by normalized code.
type Catalog struct {
	byCode map[string]Promotion
}

// NewCatalog builds a catalog from the provided rules. Later duplicates of a
// code replace earlier ones.
func NewCatalog(promos ...Promotion) *Catalog {
	byCode := make(map[string]Promotion, len(promos))
	for _, p := range promos {
		p.Code = Normalize(p.Code)
		byCode[p.Code] = p
	}
	return &Catalog{byCode: byCode}
}

// DefaultCatalog returns the storefront's live promo set.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Promotion{Code: "WELCOME10", Kind: KindPercent, Value: 10, MinSubtotal: 299},
		Promotion{Code: "TUSSNA50", Kind: KindFixed, Value: 50, MinSubtotal: 399},
		Promotion{Code: "FREESHIP", Kind: KindFreeShipping, MinSubtotal: 399},
	)
}

// Normalize upper-cases and trims a user-entered code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the promotion for the code, if known.
func (c *Catalog) Lookup(code string) (*Promotion, bool) {
	p, ok := c.byCode[Normalize(code)]
	if !ok {
		return nil, false
	}
	return &p, true
}

// TryApply validates an apply attempt against the current subtotal. The
// returned promotion replaces any previously applied one; at most one promo
// is active at a time.
func (c *Catalog) TryApply(code string, subtotal int) (*Promotion, error) {
	p, ok := c.Lookup(code)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promo code not found")
	}
	if !p.Eligible(subtotal) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subtotal below promo minimum").
			WithDetails(map[string]any{"min_subtotal": p.MinSubtotal})
	}
	return p, nil
}
