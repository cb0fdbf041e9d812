package match

import "strings"

// NormalizeKeyword folds a card keyword for comparison: lower case, without a
// leading '*' or '+' and without a particle designator (":n,p").
func NormalizeKeyword(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimLeft(s, "*+")

	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[:i]
	}

	return s
}
