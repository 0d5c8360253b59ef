// Package phonetic generates vowel-stripped query variants
//
// Brand names are often compressed acronyms of a common word, "element"
// sounds like LMNT and "liquid" like LQD. Stripping vowels from a word is a
// cheap bridge across that gap without a full phonetic-algorithm dependency.
// Variants feed the catalog aggregator and the search-trigger policy
package phonetic

import (
	"strings"

	"vitalog/internal/core/textkey"
)

// Strip removes the ASCII vowels from s
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Variants returns the vowel-stripped variants of query in deterministic order.
// One variant per word where only that word is stripped, then, for multi-word
// queries, one variant with every word stripped. Variants equal to the
// original query are skipped
func Variants(query string) []string {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil
	}

	var out []string
	seen := map[string]struct{}{query: {}}
	add := func(v string) {
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for i, w := range words {
		stripped := Strip(w)
		if stripped == "" || stripped == w {
			continue
		}
		variant := make([]string, len(words))
		copy(variant, words)
		variant[i] = stripped
		add(strings.Join(variant, " "))
	}

	if len(words) > 1 {
		all := make([]string, len(words))
		for i, w := range words {
			if s := Strip(w); s != "" {
				all[i] = s
			} else {
				// vowel-only words keep their original form so the
				// variant stays a usable query
				all[i] = w
			}
		}
		add(strings.Join(all, " "))
	}
	return out
}

// Close reports whether a and b are phonetically close, one vowel-stripped
// key being a substring of the other. Blank keys never match
func Close(a, b string) bool {
	sa := Strip(textkey.Key(a))
	sb := Strip(textkey.Key(b))
	if sa == "" || sb == "" {
		return false
	}
	return strings.Contains(sa, sb) || strings.Contains(sb, sa)
}

// TransformDetected reports whether some word of input was silently rewritten
// into a different word of output that shares the same vowel-stripped form.
// This is the signal that an upstream classifier "corrected" a term the user
// actually said, which must be surfaced for verification
func TransformDetected(input, output string) bool {
	in := textkey.Words(input)
	out := textkey.Words(output)
	if len(in) == 0 || len(out) == 0 {
		return false
	}
	for _, iw := range in {
		si := Strip(iw)
		if si == "" {
			continue
		}
		for _, ow := range out {
			if iw == ow {
				continue
			}
			if Strip(ow) == si {
				return true
			}
		}
	}
	return false
}
