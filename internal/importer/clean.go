package importer

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	phonePrefixRe = regexp.MustCompile(`^[cC]\s*-\s*`)
	nonAlnumRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

const maxDealerIDLen = 50

// firstLine returns the text before the first line break, trimmed.
// Multi-line cells carry secondary contacts we don't import.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// cleanPhone extracts the primary phone number, stripping the "c - "
// cell-phone prefix some rows carry.
func cleanPhone(s string) *string {
	p := phonePrefixRe.ReplaceAllString(firstLine(s), "")
	return optional(p)
}

// cleanEmail extracts the primary email, lower-cased. Values without an
// "@" are address fragments or notes, not emails.
func cleanEmail(s string) *string {
	e := firstLine(s)
	if e == "" || !strings.Contains(e, "@") {
		return nil
	}
	e = strings.ToLower(e)
	return &e
}

func cleanContactName(s string) *string {
	return optional(firstLine(s))
}

func cleanState(s string) *string {
	return optional(strings.ToUpper(strings.TrimSpace(s)))
}

// cleanZip normalizes a spreadsheet ZIP value. Numeric cells stored as
// floats render with decimal artifacts ("94105.0"); those are reduced to
// their integer part before zero-padding. Values that still aren't pure
// digits pass through unchanged.
func cleanZip(s string) *string {
	z := strings.TrimSpace(s)
	if z == "" {
		return nil
	}
	if strings.Contains(z, ".") {
		if f, err := strconv.ParseFloat(z, 64); err == nil {
			z = strconv.Itoa(int(f))
		}
	}
	if isDigits(z) {
		for len(z) < 5 {
			z = "0" + z
		}
	}
	return &z
}

// generateDealerID derives a URL-safe identifier from a dealer name:
// lower-cased, every run of non-alphanumerics collapsed to a single
// underscore, no leading/trailing underscore, at most 50 characters.
func generateDealerID(name string) string {
	id := nonAlnumRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	id = strings.Trim(id, "_")
	if len(id) > maxDealerIDLen {
		id = strings.TrimRight(id[:maxDealerIDLen], "_")
	}
	return id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isDigits(s string) bool {
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
