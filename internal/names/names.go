// Package names implements the token-based item name matching used by the
// statistics and holding-age reports. Names in the ledger are free text like
// "2023: Red Dragon Plush #2", so filters match on normalized word sets
// instead of exact strings.
package names

import (
	"strings"
)

// Tokenize normalizes a name into its word set. The name is lower-cased,
// anything up to the first colon is dropped (release-year prefixes), runs of
// non-alphanumeric characters collapse to single spaces, and the remainder
// splits on whitespace.
// Example: "2023: Red Dragon Plush #2" -> ["red", "dragon", "plush", "2"]
func Tokenize(name string) []string {
	s := strings.ToLower(name)
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[i+1:]
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// Matcher holds a tokenized filter for matching many candidates.
// An empty filter matches everything.
type Matcher struct {
	tokens []string
}

// NewMatcher builds a Matcher from a raw filter string.
func NewMatcher(filter string) *Matcher {
	return &Matcher{tokens: Tokenize(filter)}
}

// Matches reports whether every filter token appears among the candidate's
// tokens. This is an unordered subset match, not a substring match.
func (m *Matcher) Matches(candidate string) bool {
	if len(m.tokens) == 0 {
		return true
	}
	set := make(map[string]struct{})
	for _, tok := range Tokenize(candidate) {
		set[tok] = struct{}{}
	}
	for _, tok := range m.tokens {
		if _, ok := set[tok]; !ok {
			return false
		}
	}
	return true
}
