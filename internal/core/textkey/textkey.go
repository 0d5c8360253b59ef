// Package textkey derives normalized comparison keys from free-text product names
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Strip everything that is not a letter digit or space
// 7 Collapse whitespace to single spaces and trim
//
// Keys are the comparison unit across the registry the reclassifier and the
// catalog aggregator. They are never shown to users. Key is idempotent,
// Key(Key(s)) == Key(s) for all s
package textkey

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Key returns the normalized product key for s
func Key(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err == nil {
		s = ns
	}

	// 6-7 keep letters digits and spaces, collapse runs of whitespace
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r):
			space = true
		default:
			// punctuation is dropped without inserting a space so
			// "pre-workout" keys the same as "preworkout"
		}
	}
	return b.String()
}

// Words splits s into its key words. Empty input yields a nil slice
func Words(s string) []string {
	k := Key(s)
	if k == "" {
		return nil
	}
	return strings.Split(k, " ")
}
