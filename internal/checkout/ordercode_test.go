package checkout

import (
	"regexp"
	"testing"
	"time"
)

func TestCodeGeneratorFormat(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator("ORD")
	gen.now = func() time.Time { return time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC) }

	code, err := gen.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	pattern := regexp.MustCompile(`^ORD-20250810-[23456789ABCDEFGHJKMNPQRSTUVWXYZ]{4}$`)
	if !pattern.MatchString(code) {
		t.Fatalf("unexpected code format: %s", code)
	}
}

func TestCodeGeneratorNoDuplicatesWithinADay(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator("ORD")
	gen.now = func() time.Time { return time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC) }

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		code, err := gen.Next()
		if err != nil {
			t.Fatalf("next at %d: %v", i, err)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code at %d: %s", i, code)
		}
		seen[code] = struct{}{}
	}
}

func TestCodeGeneratorResetsOnDayRollover(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator("ORD")
	day := time.Date(2025, 8, 10, 23, 59, 0, 0, time.UTC)
	gen.now = func() time.Time { return day }

	first, err := gen.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}

	day = day.Add(2 * time.Minute)
	second, err := gen.Next()
	if err != nil {
		t.Fatalf("next after rollover: %v", err)
	}

	if first[:12] == second[:12] {
		t.Fatalf("expected date component to roll over: %s vs %s", first, second)
	}
}

func TestCodeGeneratorDefaultsPrefix(t *testing.T) {
	t.Parallel()

	gen := NewCodeGenerator("")
	code, err := gen.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if code[:4] != "ORD-" {
		t.Fatalf("expected ORD prefix, got %s", code)
	}
}
