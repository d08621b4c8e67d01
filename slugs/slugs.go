// Package slugs builds the display titles and the stable slugs that identify
// every civic entity. Identical input always yields byte-identical output,
// which is what keeps repeated ingestion from creating duplicates.
package slugs

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctuation     = regexp.MustCompile(`[.,'’"#()]`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify lower-cases s, folds diacritics, drops punctuation and replaces
// every other run of non alphanumeric characters with a single hyphen.
func Slugify(s string) string {
	s = foldDiacritics(s)
	s = punctuation.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Title joins the non-empty parts with a single space, collapsing any
// repeated whitespace inside them.
func Title(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// a transform.Transformer keeps state, so a fresh chain is built per call
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
