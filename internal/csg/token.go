package csg

import (
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=TokenKind -linecomment -output=token_string.go

// TokenKind is the type of a geometry token.
type TokenKind int

const (
	_ TokenKind = iota // zero value is invalid

	TokIntersect  // INTERSECT
	TokUnion      // UNION
	TokComplement // COMPLEMENT
	TokLParen     // LPAREN
	TokRParen     // RPAREN
	TokCellNum    // CELLNUM
	TokSurfNum    // SURFNUM
)

// Token is one entry of a geometry expression. Value is the signed surface
// number for TokSurfNum and the cell number for TokCellNum.
type Token struct {
	Kind  TokenKind
	Value int
}

// Surf returns a signed surface token.
func Surf(n int) Token { return Token{Kind: TokSurfNum, Value: n} }

// Cell returns a cell-number token.
func Cell(n int) Token { return Token{Kind: TokCellNum, Value: n} }

// Op returns a token with no operand.
func Op(k TokenKind) Token { return Token{Kind: k} }

// Text returns the token as it appears in a deck. TokIntersect has no
// spelling of its own and renders as the empty string.
func (t Token) Text() string {
	switch t.Kind {
	case TokIntersect:
		return ""
	case TokUnion:
		return ":"
	case TokComplement:
		return "#"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokCellNum, TokSurfNum:
		return strconv.Itoa(t.Value)
	default:
		return t.Kind.String()
	}
}

// String renders the token for diagnostics, e.g. SURFNUM(-3).
func (t Token) String() string {
	switch t.Kind {
	case TokCellNum, TokSurfNum:
		return t.Kind.String() + "(" + strconv.Itoa(t.Value) + ")"
	default:
		return t.Kind.String()
	}
}

// Tokens is a geometry expression in source order.
type Tokens []Token

// String renders the tokens as deck text.
func (ts Tokens) String() string {
	var b strings.Builder

	for i, t := range ts {
		txt := t.Text()
		if txt == "" {
			continue
		}

		if i > 0 && needsSpace(ts[i-1], t) {
			b.WriteByte(' ')
		}

		b.WriteString(txt)
	}

	return b.String()
}

func needsSpace(prev, cur Token) bool {
	switch {
	case prev.Kind == TokComplement, prev.Kind == TokLParen:
		return false
	case cur.Kind == TokRParen:
		return false
	default:
		return true
	}
}
