package csg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var geomLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Complement", Pattern: `#`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Union", Pattern: `:`},
	{Name: "Number", Pattern: `[+-]?[0-9]+`},
})

var geomSymbols = geomLexer.Symbols()

// Lex splits free-form geometry text such as "-1 2 (3:-4) #5" into tokens.
// Spaces are optional around '(', ')', ':' and '#'. A number directly after
// '#' is a cell number; every other number is a signed surface number.
func Lex(text string) (Tokens, error) {
	lex, err := geomLexer.Lex("", strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	var out Tokens

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, &ExprError{Pos: len(out), Msg: err.Error()}
		}

		if tok.EOF() {
			return out, nil
		}

		switch tok.Type {
		case geomSymbols["Whitespace"]:
			continue
		case geomSymbols["Complement"]:
			out = append(out, Op(TokComplement))
		case geomSymbols["LParen"]:
			out = append(out, Op(TokLParen))
		case geomSymbols["RParen"]:
			out = append(out, Op(TokRParen))
		case geomSymbols["Union"]:
			out = append(out, Op(TokUnion))
		case geomSymbols["Number"]:
			n, err := strconv.Atoi(strings.TrimPrefix(tok.Value, "+"))
			if err != nil {
				return nil, &ExprError{Pos: len(out), Msg: fmt.Sprintf("invalid number %q", tok.Value)}
			}

			if len(out) > 0 && out[len(out)-1].Kind == TokComplement {
				out = append(out, Cell(n))
			} else {
				out = append(out, Surf(n))
			}
		}
	}
}
