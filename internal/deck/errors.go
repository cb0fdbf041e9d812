package deck

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrDanglingReference   = errors.New("dangling geometry reference")
	ErrCircularReference   = errors.New("circular reference")
	ErrAlreadyResolved     = errors.New("geometry already resolved")
	ErrInvalidCard         = errors.New("invalid card")
	ErrMissingBlock        = errors.New("missing block")
)

// CardError attaches the offending card to an error.
type CardError struct {
	Kind CardKind
	ID   int
	// Name is set for OTHER data cards, whose identity includes their mnemonic.
	Name string
	Line int
	Err  error
}

func (e *CardError) Error() string {
	card := fmt.Sprintf("%s %d", e.Kind, e.ID)
	if e.Name != "" {
		card = fmt.Sprintf("%s card %s", e.Kind, e.Name)
		if e.ID != 0 {
			card += fmt.Sprint(e.ID)
		}
	}

	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, card, e.Err)
	}

	return fmt.Sprintf("%s: %v", card, e.Err)
}

func (e *CardError) Unwrap() error { return e.Err }

// CardKind names the block a card belongs to.
type CardKind int

const (
	CardCell CardKind = iota + 1
	CardSurface
	CardTransform
	CardData
)

func (k CardKind) String() string {
	switch k {
	case CardCell:
		return "cell"
	case CardSurface:
		return "surface"
	case CardTransform:
		return "transform"
	case CardData:
		return "data"
	default:
		return "card"
	}
}

func cardErr(kind CardKind, id, line int, err error) error {
	return &CardError{Kind: kind, ID: id, Line: line, Err: err}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCard, fmt.Sprintf(format, args...))
}
