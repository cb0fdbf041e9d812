package deck

import (
	"fmt"
	"strings"

	"mcnp-csg/internal/common"
	"mcnp-csg/internal/csg"
	"mcnp-csg/internal/dataref"
	"mcnp-csg/internal/diagnostic"
	"mcnp-csg/internal/lines"
	"mcnp-csg/internal/xform"
)

// likeCell is "j LIKE n BUT params". Until the geometry is resolved it only
// knows its own number and overrides.
type likeCell struct {
	ident     int
	base      int
	overrides []Param
	line      int

	resolved *cellCard
}

func parseLikeCell(id int, c lines.Card, diags *diagnostic.Diagnostics) (Cell, error) {
	w := c.Words
	if len(w) < 4 || w[3] != "but" {
		return nil, cardErr(CardCell, id, c.Line, invalidf("expected \"%d like n but ...\"", id))
	}

	base, err := common.ParseInt(w[2])
	if err != nil || base <= 0 {
		return nil, cardErr(CardCell, id, c.Line, invalidf("bad like cell number %q", w[2]))
	}

	if base == id {
		return nil, cardErr(CardCell, id, c.Line, fmt.Errorf("%w: cell %d is like itself", ErrCircularReference, id))
	}

	params, err := splitParams(w[4:])
	if err != nil {
		return nil, cardErr(CardCell, id, c.Line, err)
	}

	checkParamKeys(params, id, c.Line, diags)

	return &likeCell{ident: id, base: base, overrides: params, line: c.Line}, nil
}

// Base returns the number of the cell this one copies.
func (l *likeCell) Base() int { return l.base }

func (l *likeCell) Ident() int { return l.ident }

func (l *likeCell) Line() int { return l.line }

func (l *likeCell) card() *cellCard { return l.resolved }

func (l *likeCell) Geom() csg.Tokens {
	if l.resolved == nil {
		return nil
	}

	return l.resolved.Geom()
}

func (l *likeCell) Tree() csg.Node {
	if l.resolved == nil {
		return nil
	}

	return l.resolved.tree
}

func (l *likeCell) Trcl() dataref.Ref[xform.Transform] {
	if l.resolved == nil {
		return nil
	}

	return l.resolved.trcl
}

func (l *likeCell) Universe() int {
	if l.resolved == nil {
		return 0
	}

	return l.resolved.universe
}

func (l *likeCell) HasFill() bool { return l.resolved != nil && l.resolved.fill != nil }

func (l *likeCell) Fill() *Lattice {
	if l.resolved == nil {
		return nil
	}

	return l.resolved.fill
}

func (l *likeCell) Lat() LatticeKind {
	if l.resolved == nil {
		return LatticeNone
	}

	return l.resolved.lat
}

func (l *likeCell) Material() int {
	if l.resolved == nil {
		return 0
	}

	return l.resolved.material
}

func (l *likeCell) Density() (float64, bool) {
	if l.resolved == nil {
		return 0, false
	}

	return l.resolved.Density()
}

// Params returns the merged parameters once resolved, the overrides before.
func (l *likeCell) Params() []Param {
	if l.resolved == nil {
		return append([]Param(nil), l.overrides...)
	}

	return l.resolved.Params()
}

func (l *likeCell) String() string {
	parts := []string{fmt.Sprintf("%d like %d but", l.ident, l.base)}
	for _, p := range l.overrides {
		parts = append(parts, p.String())
	}

	return strings.Join(parts, " ")
}

// materialize builds the resolved card from an already resolved base.
func (l *likeCell) materialize(base *cellCard, transforms dataref.Registry[xform.Transform]) error {
	c := base.clone()
	c.ident = l.ident
	c.line = l.line
	c.params = mergeParams(base.params, l.overrides)

	if err := c.apply(l.overrides, transforms); err != nil {
		return cardErr(CardCell, l.ident, l.line, err)
	}

	l.resolved = c

	return nil
}
