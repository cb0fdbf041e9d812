package csg

import (
	"strconv"
	"strings"

	"mcnp-csg/internal/surface"
)

// Format renders n as canonical geometry text. Lexing and compiling the
// result gives back a tree equal to n.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)

	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Halfspace:
		if v.Sense == surface.SenseNegative {
			b.WriteByte('-')
		}

		b.WriteString(strconv.Itoa(v.Surface))

	case *CellRef:
		// Only reachable through Complement, which prints the '#'.
		b.WriteString(strconv.Itoa(v.Cell))

	case *Complement:
		b.WriteByte('#')

		if _, ok := v.X.(*CellRef); ok {
			format(b, v.X)
			return
		}

		b.WriteByte('(')
		format(b, v.X)
		b.WriteByte(')')

	case *Intersect:
		operand(b, v.L, v.L.precedence() < precIntersect)
		b.WriteByte(' ')
		operand(b, v.R, v.R.precedence() <= precIntersect)

	case *Union:
		operand(b, v.L, false)
		b.WriteString(" : ")
		operand(b, v.R, v.R.precedence() <= precUnion)
	}
}

func operand(b *strings.Builder, n Node, paren bool) {
	if paren {
		b.WriteByte('(')
	}

	format(b, n)

	if paren {
		b.WriteByte(')')
	}
}

// Flatten converts n back into a token list.
func Flatten(n Node) Tokens {
	var out Tokens

	var walk func(n Node, paren bool)
	walk = func(n Node, paren bool) {
		if paren {
			out = append(out, Op(TokLParen))
		}

		switch v := n.(type) {
		case *Halfspace:
			s := v.Surface
			if v.Sense == surface.SenseNegative {
				s = -s
			}

			out = append(out, Surf(s))
		case *CellRef:
			out = append(out, Cell(v.Cell))
		case *Complement:
			out = append(out, Op(TokComplement))
			_, isCell := v.X.(*CellRef)
			walk(v.X, !isCell)
		case *Intersect:
			walk(v.L, v.L.precedence() < precIntersect)
			walk(v.R, v.R.precedence() <= precIntersect)
		case *Union:
			walk(v.L, false)
			out = append(out, Op(TokUnion))
			walk(v.R, v.R.precedence() <= precUnion)
		}

		if paren {
			out = append(out, Op(TokRParen))
		}
	}

	walk(n, false)

	return out
}
