package deck

import (
	"slices"
	"strings"

	"mcnp-csg/internal/match"
)

// Param is one keyword entry of a cell card, e.g. "imp:n=1" or
// "fill=0:1 0:1 0:0 1 2 2r".
type Param struct {
	Key    string
	Values []string
}

func (p Param) String() string {
	if len(p.Values) == 0 {
		return p.Key
	}

	return p.Key + "=" + strings.Join(p.Values, " ")
}

// name is the key without '*', '+' or a particle designator.
func (p Param) name() string { return match.NormalizeKeyword(p.Key) }

// starred reports a '*' form such as *trcl or *fill, whose angles are in
// degrees.
func (p Param) starred() bool { return strings.HasPrefix(p.Key, "*") }

// knownParams lists the cell keywords accepted without a warning.
var knownParams = []string{
	"bflcl", "cosy", "dxc", "elpt", "ext", "fcl", "fill", "imp", "lat",
	"mat", "nonu", "pd", "pwt", "rho", "tmp", "trcl", "u", "unc", "vol", "wwn",
}

func isKnownParam(name string) bool {
	return slices.Contains(knownParams, name)
}

// splitParams tokenizes the keyword section of a cell card. '=', '(' and ')'
// may be glued to neighbouring words; '=' is dropped, parentheses are kept
// as separate values.
func splitParams(words []string) ([]Param, error) {
	text := strings.Join(words, " ")

	r := strings.NewReplacer("=", " = ", "(", " ( ", ")", " ) ")
	toks := strings.Fields(r.Replace(text))

	var (
		out   []Param
		depth int
	)

	for _, t := range toks {
		switch {
		case t == "=":
			if len(out) == 0 {
				return nil, invalidf("'=' without a keyword")
			}

			continue
		case t == "(":
			depth++
		case t == ")":
			depth--
			if depth < 0 {
				return nil, invalidf("unbalanced ')' in cell parameters")
			}
		case depth == 0 && isKeyword(t):
			out = append(out, Param{Key: t})
			continue
		}

		if len(out) == 0 {
			return nil, invalidf("value %q before any keyword", t)
		}

		last := &out[len(out)-1]
		last.Values = append(last.Values, t)
	}

	if depth != 0 {
		return nil, invalidf("unbalanced '(' in cell parameters")
	}

	return out, nil
}

// isKeyword reports whether word opens a parameter. Lattice repeat counts
// such as "2r" start with a digit and never qualify.
func isKeyword(word string) bool {
	c := word[0]

	return c == '*' || (c >= 'a' && c <= 'z')
}

// mergeParams returns base with every key of over replacing the entry of the
// same key, new keys appended in order.
func mergeParams(base, over []Param) []Param {
	out := make([]Param, 0, len(base)+len(over))
	out = append(out, base...)

	for _, p := range over {
		replaced := false

		for i := range out {
			if out[i].name() == p.name() && sameParticles(out[i].Key, p.Key) {
				out[i] = p
				replaced = true

				break
			}
		}

		if !replaced {
			out = append(out, p)
		}
	}

	return out
}

func sameParticles(a, b string) bool {
	_, pa, _ := strings.Cut(a, ":")
	_, pb, _ := strings.Cut(b, ":")

	return pa == pb
}
