package csg

import (
	"errors"
	"fmt"
)

// ErrMalformedExpression is wrapped by every *ExprError.
var ErrMalformedExpression = errors.New("malformed geometry expression")

// ExprError locates a problem in a geometry expression. Pos is the index of
// the offending token.
type ExprError struct {
	Pos   int
	Token *Token
	Msg   string
}

func (e *ExprError) Error() string {
	if e.Token != nil {
		return fmt.Sprintf("%s at token %d (%s): %s", ErrMalformedExpression, e.Pos, e.Token, e.Msg)
	}

	return fmt.Sprintf("%s at token %d: %s", ErrMalformedExpression, e.Pos, e.Msg)
}

func (e *ExprError) Unwrap() error { return ErrMalformedExpression }
