package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics strips combining marks after NFD decomposition so city
// names like "Española" or "Cañon City" fold to plain ASCII before slugging.
var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts a display name into a lowercase hyphenated URL segment.
func Slugify(s string) string {
	folded, _, err := transform.String(removeDiacritics, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = strings.ReplaceAll(folded, "&", " and ")

	var b strings.Builder
	pendingHyphen := false
	for _, r := range folded {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LocationID builds the canonical location identifier from city and state,
// e.g. ("Fort Worth", "TX") -> "fort-worth-tx".
func LocationID(city, state string) string {
	return Slugify(city + " " + state)
}
