package csg

import (
	"mcnp-csg/internal/surface"
)

// Compile builds the CSG tree for toks.
func Compile(toks Tokens) (Node, error) {
	if len(toks) == 0 {
		return nil, &ExprError{Pos: 0, Msg: "empty expression"}
	}

	p := &parser{toks: toks}

	n, err := p.union()
	if err != nil {
		return nil, err
	}

	if p.pos < len(toks) {
		if toks[p.pos].Kind == TokRParen {
			return nil, p.errAt(p.pos, "unbalanced ')'")
		}

		return nil, p.errAt(p.pos, "unexpected token")
	}

	return n, nil
}

// Parse lexes and compiles geometry text.
func Parse(text string) (Node, Tokens, error) {
	toks, err := Lex(text)
	if err != nil {
		return nil, nil, err
	}

	n, err := Compile(toks)
	if err != nil {
		return nil, nil, err
	}

	return n, toks, nil
}

type parser struct {
	toks Tokens
	pos  int
}

func (p *parser) errAt(pos int, msg string) *ExprError {
	e := &ExprError{Pos: pos, Msg: msg}
	if pos >= 0 && pos < len(p.toks) {
		t := p.toks[pos]
		e.Token = &t
	}

	return e
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.toks) {
		return Token{}, false
	}

	return p.toks[p.pos], true
}

func (p *parser) union() (Node, error) {
	left, err := p.intersect()
	if err != nil {
		return nil, err
	}

	for {
		t, ok := p.peek()
		if !ok || t.Kind != TokUnion {
			return left, nil
		}

		p.pos++

		right, err := p.intersect()
		if err != nil {
			return nil, err
		}

		left = &Union{L: left, R: right}
	}
}

func (p *parser) intersect() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		t, ok := p.peek()
		if !ok {
			return left, nil
		}

		switch t.Kind {
		case TokIntersect:
			p.pos++
		case TokSurfNum, TokComplement, TokLParen:
		default:
			return left, nil
		}

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		left = &Intersect{L: left, R: right}
	}
}

func (p *parser) unary() (Node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.danglingAt(p.pos - 1)
	}

	start := p.pos
	p.pos++

	switch t.Kind {
	case TokSurfNum:
		return halfspace(p, start, t)

	case TokComplement:
		op, ok := p.peek()
		if !ok {
			return nil, p.errAt(start, "dangling '#'")
		}

		switch op.Kind {
		case TokCellNum:
			p.pos++

			if op.Value <= 0 {
				return nil, p.errAt(p.pos-1, "cell number must be positive")
			}

			return &Complement{X: &CellRef{Cell: op.Value}}, nil
		case TokSurfNum:
			p.pos++

			h, err := halfspace(p, p.pos-1, op)
			if err != nil {
				return nil, err
			}

			return &Complement{X: h}, nil
		case TokLParen:
			p.pos++

			inner, err := p.group(p.pos - 1)
			if err != nil {
				return nil, err
			}

			return &Complement{X: inner}, nil
		default:
			return nil, p.errAt(p.pos, "'#' must be followed by a cell, surface or group")
		}

	case TokLParen:
		return p.group(start)

	case TokCellNum:
		return nil, p.errAt(start, "cell number must follow '#'")

	case TokRParen:
		return nil, p.errAt(start, "unbalanced ')'")

	case TokUnion, TokIntersect:
		return nil, p.errAt(start, "operator without left operand")

	default:
		return nil, p.errAt(start, "unknown token")
	}
}

// group parses the body of a parenthesized group whose '(' is at open.
func (p *parser) group(open int) (Node, error) {
	if t, ok := p.peek(); ok && t.Kind == TokRParen {
		return nil, p.errAt(open, "empty group")
	}

	inner, err := p.union()
	if err != nil {
		return nil, err
	}

	t, ok := p.peek()
	if !ok || t.Kind != TokRParen {
		return nil, p.errAt(open, "unbalanced '('")
	}

	p.pos++

	return inner, nil
}

// danglingAt reports a missing operand after the token at pos.
func (p *parser) danglingAt(pos int) *ExprError {
	if pos < 0 {
		return p.errAt(0, "expected operand")
	}

	switch p.toks[pos].Kind {
	case TokUnion, TokIntersect, TokComplement:
		return p.errAt(pos, "dangling operator")
	default:
		return p.errAt(pos, "expected operand")
	}
}

func halfspace(p *parser, pos int, t Token) (*Halfspace, error) {
	switch {
	case t.Value > 0:
		return &Halfspace{Surface: t.Value, Sense: surface.SensePositive}, nil
	case t.Value < 0:
		return &Halfspace{Surface: -t.Value, Sense: surface.SenseNegative}, nil
	default:
		return nil, p.errAt(pos, "surface number 0")
	}
}
