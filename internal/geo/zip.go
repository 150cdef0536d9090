package geo

import "strings"

// NormalizeZip coerces a ZIP value into the 5-character zero-padded digit
// form used as the reference table key. Non-digit characters are dropped
// when the trimmed input is not purely numeric (handles ZIP+4 and
// spreadsheet artifacts); the result is zero-padded and truncated to
// exactly 5 characters. Normalization is idempotent for 5-digit inputs.
func NormalizeZip(s string) string {
	z := strings.TrimSpace(s)
	if !allDigits(z) {
		var b strings.Builder
		for _, r := range z {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		z = b.String()
	}
	for len(z) < 5 {
		z = "0" + z
	}
	return z[:5]
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
