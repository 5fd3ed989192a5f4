package offlinerepo

import (
	"strings"
	"unicode"
)

// ScopeSeparator delimits the segments of a scope token.
const ScopeSeparator = "::"

// ScopeFor builds a scope token from its segments, e.g.
// ScopeFor("cart", userID) or ScopeFor("categories", "all"). Each segment is
// normalized so tokens stay safe to use as storage keys; empty segments are
// dropped.
func ScopeFor(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if n := NormalizeScope(s); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ScopeSeparator)
}

// NormalizeScope lowercases a scope segment and collapses anything that is
// not a letter, digit, dot or dash into single underscores. Punctuation left
// in scope tokens would break prefix-keyed storage backends.
func NormalizeScope(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastUnderscore := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		case r == '.' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
