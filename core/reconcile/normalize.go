package reconcile

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Code annotations are stripped in this order. They run before accent folding
// because the Czech marker "kód" itself carries an accent.
var (
	// "(kód: 123)", "(pozn. kod 12-a)"
	parenCodePattern = regexp.MustCompile(`\(.*k(ó|o)d[:\s]*[^)]*\)`)
	// "kód:123", "kod ab/12"
	inlineCodePattern = regexp.MustCompile(`k(ó|o)d[:\s]*[0-9a-zA-Z\-_/]*`)
	// "obj.:55", "obj 12"
	orderCodePattern = regexp.MustCompile(`obj\.*[:\s]*[0-9a-zA-Z\-_/]*`)
	// " kód 123"
	trailingCodePattern = regexp.MustCompile(`\s*k(ó|o)d\s*[0-9a-zA-Z\-_/]+`)
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName canonicalizes a product name for fuzzy matching.
// It lower-cases, removes code annotations, folds diacritics and collapses whitespace.
// The function is total: any input yields a (possibly empty) string.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(strings.ToLower(raw))

	name = parenCodePattern.ReplaceAllString(name, "")
	name = inlineCodePattern.ReplaceAllString(name, "")
	name = orderCodePattern.ReplaceAllString(name, "")
	name = trailingCodePattern.ReplaceAllString(name, "")

	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}

	return strings.Join(strings.Fields(name), " ")
}
