package promotions

import (
	"testing"

	pkgerrors "github.com/cocobloom/storefront-backend/pkg/errors"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	if got := Normalize("  welcome10 "); got != "WELCOME10" {
		t.Fatalf("expected WELCOME10, got %q", got)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	p, ok := catalog.Lookup("freeship")
	if !ok {
		t.Fatal("expected freeship to resolve")
	}
	if p.Kind != KindFreeShipping {
		t.Fatalf("expected free_shipping kind, got %s", p.Kind)
	}
}

func TestTryApplyAcceptsEligibleCode(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	p, err := catalog.TryApply("welcome10", 500)
	if err != nil {
		t.Fatalf("expected apply to succeed: %v", err)
	}
	if p.Code != "WELCOME10" || p.Value != 10 {
		t.Fatalf("unexpected promotion: %+v", p)
	}
}

func TestTryApplyRejectsUnknownCode(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	_, err := catalog.TryApply("NOPE", 1000)
	if err == nil {
		t.Fatal("expected unknown code error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestTryApplyRejectsBelowMinimum(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	_, err := catalog.TryApply("TUSSNA50", 398)
	if err == nil {
		t.Fatal("expected below-minimum error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected detail map, got %T", typed.Details())
	}
	if details["min_subtotal"] != 399 {
		t.Fatalf("expected min_subtotal=399, got %v", details["min_subtotal"])
	}
}

func TestEligibleBoundary(t *testing.T) {
	t.Parallel()

	p := Promotion{Code: "X", Kind: KindFixed, Value: 50, MinSubtotal: 399}
	if p.Eligible(398) {
		t.Fatal("398 should not be eligible")
	}
	if !p.Eligible(399) {
		t.Fatal("399 should be eligible")
	}
}
