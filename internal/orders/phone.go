package orders

import "strings"

// NormalizePhone canonicalizes Moroccan numbers to +212 form so tracking
// lookups match what checkout stored. Bare local numbers are assumed to be
// Moroccan.
func NormalizePhone(raw string) string {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	num := digits.String()

	switch {
	case num == "":
		return ""
	case strings.HasPrefix(num, "212"):
		return "+" + num
	case strings.HasPrefix(num, "0"):
		return "+212" + num[1:]
	default:
		return "+212" + num
	}
}
