package hierarchy

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SortOrder selects the direction of sibling ordering in VisibleRows.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// codeComparator orders account codes with locale-aware, numeric-aware
// collation, so "2" sorts before "10" rather than lexicographically.
// A collate.Collator is not safe for concurrent use; each Index owns one and
// only touches it while building, never afterwards.
type codeComparator struct {
	col *collate.Collator
}

func newCodeComparator(tag language.Tag) *codeComparator {
	return &codeComparator{
		col: collate.New(tag, collate.Numeric, collate.Loose),
	}
}

// compare returns the collation order of a and b.
func (c *codeComparator) compare(a, b string) int {
	return c.col.CompareString(a, b)
}

// foldText lowercases and strips combining marks so that filter matching is
// case- and accent-insensitive ("Cámara" matches "camara").
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
