package deck

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mcnp-csg/internal/common"
	"mcnp-csg/internal/dataref"
	"mcnp-csg/internal/surface"
	"mcnp-csg/internal/xform"
)

// Boundary is the boundary condition prefix of a surface card.
type Boundary int

const (
	BoundaryNone       Boundary = iota
	BoundaryReflecting          // '*'
	BoundaryWhite               // '+'
)

func (b Boundary) prefix() string {
	switch b {
	case BoundaryReflecting:
		return "*"
	case BoundaryWhite:
		return "+"
	default:
		return ""
	}
}

// SurfaceCard is one card of the surface block.
type SurfaceCard struct {
	ident     int
	boundary  Boundary
	transform dataref.Ref[xform.Transform]
	periodic  int
	mnemonic  string
	args      []float64
	surface   surface.Surface
	line      int
}

// parseSurfaceCard reads "[*|+]j [n] mnemonic a1 a2 ...". A positive n names
// a TR card, a negative n a periodic partner surface.
func parseSurfaceCard(words []string, line int, transforms dataref.Registry[xform.Transform]) (*SurfaceCard, error) {
	if len(words) < 2 {
		return nil, &CardError{Kind: CardSurface, Line: line, Err: invalidf("surface card needs a number and a mnemonic")}
	}

	s := &SurfaceCard{line: line}

	idWord := words[0]
	switch idWord[0] {
	case '*':
		s.boundary = BoundaryReflecting
		idWord = idWord[1:]
	case '+':
		s.boundary = BoundaryWhite
		idWord = idWord[1:]
	}

	id, err := common.ParseInt(idWord)
	if err != nil || id <= 0 {
		return nil, &CardError{Kind: CardSurface, Line: line, Err: invalidf("bad surface number %q", words[0])}
	}

	s.ident = id
	rest := words[1:]

	if n, err := common.ParseInt(rest[0]); err == nil {
		switch {
		case n > 0:
			s.transform = dataref.NewLookup(n, transforms)
		case n < 0:
			s.periodic = -n
		}

		rest = rest[1:]
	}

	if len(rest) == 0 {
		return nil, cardErr(CardSurface, id, line, invalidf("missing mnemonic"))
	}

	s.mnemonic = rest[0]

	s.args, err = common.ParseFloats(rest[1:])
	if err != nil {
		return nil, cardErr(CardSurface, id, line, invalidf("%v", err))
	}

	s.surface, err = surface.New(s.mnemonic, s.args)
	if err != nil {
		return nil, cardErr(CardSurface, id, line, err)
	}

	return s, nil
}

// Ident returns the surface number.
func (s *SurfaceCard) Ident() int { return s.ident }

// Mnemonic returns the lower-case mnemonic.
func (s *SurfaceCard) Mnemonic() string { return s.mnemonic }

// Args returns a copy of the coefficients.
func (s *SurfaceCard) Args() []float64 { return append([]float64(nil), s.args...) }

// Surface returns the analytic surface in its own coordinates.
func (s *SurfaceCard) Surface() surface.Surface { return s.surface }

// Transform returns the TR reference, or nil when the surface has none.
func (s *SurfaceCard) Transform() dataref.Ref[xform.Transform] { return s.transform }

// Boundary returns the boundary condition.
func (s *SurfaceCard) Boundary() Boundary { return s.boundary }

// Periodic returns the partner surface of a periodic boundary, or 0.
func (s *SurfaceCard) Periodic() int { return s.periodic }

// Line returns the input line of the card.
func (s *SurfaceCard) Line() int { return s.line }

// Sense classifies a point given in main coordinates, applying the surface's
// transform when it has one.
func (s *SurfaceCard) Sense(p xform.Vec3) surface.Sense {
	if s.transform != nil {
		if t, err := s.transform.Get(); err == nil {
			p = t.Inverse().Apply(p)
		}
	}

	return surface.SenseOf(s.surface, p)
}

// bind resolves the transform reference.
func (s *SurfaceCard) bind() error {
	if s.transform == nil {
		return nil
	}

	if _, err := s.transform.Get(); err != nil {
		if errors.Is(err, dataref.ErrUnresolved) {
			return cardErr(CardSurface, s.ident, s.line,
				fmt.Errorf("%w: transform %d", ErrUnresolvedReference, s.transform.ID()))
		}

		return cardErr(CardSurface, s.ident, s.line, err)
	}

	return nil
}

// String prints the card in canonical form.
func (s *SurfaceCard) String() string {
	var b strings.Builder

	b.WriteString(s.boundary.prefix())
	b.WriteString(strconv.Itoa(s.ident))

	switch {
	case s.transform != nil:
		fmt.Fprintf(&b, " %d", s.transform.ID())
	case s.periodic != 0:
		fmt.Fprintf(&b, " %d", -s.periodic)
	}

	b.WriteByte(' ')
	b.WriteString(s.mnemonic)

	for _, a := range s.args {
		b.WriteByte(' ')
		b.WriteString(common.FormatFloat(a))
	}

	return b.String()
}

