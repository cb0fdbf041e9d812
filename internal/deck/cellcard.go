package deck

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"mcnp-csg/internal/common"
	"mcnp-csg/internal/csg"
	"mcnp-csg/internal/dataref"
	"mcnp-csg/internal/diagnostic"
	"mcnp-csg/internal/lines"
	"mcnp-csg/internal/match"
	"mcnp-csg/internal/xform"
)

// Cell is one card of the cell block. It has two forms: a full card
// "j m [d] geom params" and "j LIKE n BUT params", which takes everything
// from cell n except the listed parameters. The like form answers with its
// base's data once the geometry is resolved.
type Cell interface {
	Ident() int
	// Geom returns a copy of the geometry tokens in source order.
	Geom() csg.Tokens
	// Tree returns the compiled geometry.
	Tree() csg.Node
	// Trcl returns the cell transform, or nil when the cell has none.
	Trcl() dataref.Ref[xform.Transform]
	Universe() int
	HasFill() bool
	Fill() *Lattice
	Lat() LatticeKind
	Material() int
	// Density returns the density entry; ok is false for void cells.
	Density() (rho float64, ok bool)
	Params() []Param
	Line() int
	String() string

	card() *cellCard
}

type cellCard struct {
	ident      int
	material   int
	density    float64
	hasDensity bool
	geom       csg.Tokens
	tree       csg.Node
	params     []Param
	universe   int
	trcl       dataref.Ref[xform.Transform]
	lat        LatticeKind
	fill       *Lattice
	line       int
}

func (c *cellCard) Ident() int                          { return c.ident }
func (c *cellCard) Geom() csg.Tokens                    { return slices.Clone(c.geom) }
func (c *cellCard) Tree() csg.Node                      { return c.tree }
func (c *cellCard) Trcl() dataref.Ref[xform.Transform] { return c.trcl }
func (c *cellCard) Universe() int                       { return c.universe }
func (c *cellCard) HasFill() bool                       { return c.fill != nil }
func (c *cellCard) Fill() *Lattice                      { return c.fill }
func (c *cellCard) Lat() LatticeKind                    { return c.lat }
func (c *cellCard) Material() int                       { return c.material }
func (c *cellCard) Density() (float64, bool)            { return c.density, c.hasDensity }
func (c *cellCard) Params() []Param                     { return slices.Clone(c.params) }
func (c *cellCard) Line() int                           { return c.line }
func (c *cellCard) card() *cellCard                     { return c }

func (c *cellCard) String() string {
	parts := []string{strconv.Itoa(c.ident), strconv.Itoa(c.material)}
	if c.hasDensity {
		parts = append(parts, common.FormatFloat(c.density))
	}

	parts = append(parts, c.geom.String())

	for _, p := range c.params {
		if n := p.name(); n == "mat" || n == "rho" {
			continue
		}

		parts = append(parts, p.String())
	}

	return strings.Join(parts, " ")
}

// parseCellCard reads one cell card. Unknown parameter keywords are reported
// to diags and kept.
func parseCellCard(c lines.Card, transforms dataref.Registry[xform.Transform], diags *diagnostic.Diagnostics) (Cell, error) {
	w := c.Words
	if len(w) < 2 {
		return nil, &CardError{Kind: CardCell, Line: c.Line, Err: invalidf("cell card needs a number and a material")}
	}

	id, err := common.ParseInt(w[0])
	if err != nil || id <= 0 {
		return nil, &CardError{Kind: CardCell, Line: c.Line, Err: invalidf("bad cell number %q", w[0])}
	}

	if w[1] == "like" {
		return parseLikeCell(id, c, diags)
	}

	cell := &cellCard{ident: id, line: c.Line}

	cell.material, err = common.ParseInt(w[1])
	if err != nil {
		return nil, cardErr(CardCell, id, c.Line, invalidf("bad material %q", w[1]))
	}

	rest := w[2:]

	if cell.material != 0 {
		if len(rest) == 0 {
			return nil, cardErr(CardCell, id, c.Line, invalidf("missing density"))
		}

		cell.density, err = common.ParseFloat(rest[0])
		if err != nil {
			return nil, cardErr(CardCell, id, c.Line, invalidf("bad density %q", rest[0]))
		}

		cell.hasDensity = true
		rest = rest[1:]
	}

	n := slices.IndexFunc(rest, isKeyword)
	if n < 0 {
		n = len(rest)
	}

	cell.tree, cell.geom, err = csg.Parse(strings.Join(rest[:n], " "))
	if err != nil {
		return nil, cardErr(CardCell, id, c.Line, err)
	}

	cell.params, err = splitParams(rest[n:])
	if err != nil {
		return nil, cardErr(CardCell, id, c.Line, err)
	}

	checkParamKeys(cell.params, id, c.Line, diags)

	if err := cell.apply(cell.params, transforms); err != nil {
		return nil, cardErr(CardCell, id, c.Line, err)
	}

	return cell, nil
}

const CodeUnknownParameter = "unknown-parameter"

func checkParamKeys(params []Param, id, line int, diags *diagnostic.Diagnostics) {
	for _, p := range params {
		if isKnownParam(p.name()) {
			continue
		}

		diags.AddWarning(CodeUnknownParameter,
			fmt.Sprintf("unknown cell parameter %q", p.Key),
			fmt.Sprintf("cell %d", id), line,
			match.Suggest(p.name(), knownParams, match.DefaultMaxSuggestions)...)
	}
}

// apply sets the structured fields named by params. Keys not listed here are
// kept only as text.
func (c *cellCard) apply(params []Param, transforms dataref.Registry[xform.Transform]) error {
	seen := make(map[string]bool)

	for _, p := range params {
		key := strings.TrimLeft(p.Key, "*")
		if seen[key] {
			return invalidf("parameter %q given twice", p.Key)
		}

		seen[key] = true

		var err error

		switch p.name() {
		case "u":
			err = c.setUniverse(p)
		case "trcl":
			c.trcl, err = transformRef(unparen(p.Values), p.starred(), transforms)
		case "lat":
			err = c.setLat(p)
		case "fill":
			c.fill, err = parseFill(p.Values, p.starred(), transforms)
		case "mat":
			c.material, err = singleInt(p)
			if err == nil && c.material == 0 {
				c.density, c.hasDensity = 0, false
			}
		case "rho":
			err = c.setDensity(p)
		}

		if err != nil {
			return fmt.Errorf("%s: %w", p.Key, err)
		}
	}

	if c.lat != LatticeNone && c.fill == nil {
		return invalidf("lattice cell has no fill")
	}

	if c.fill != nil {
		if c.lat == LatticeNone && c.fill.ranged {
			return invalidf("fill with index ranges needs lat")
		}

		c.fill.kind = c.lat
		c.fill.unbounded = c.lat != LatticeNone && !c.fill.ranged
	}

	return nil
}

func (c *cellCard) setUniverse(p Param) error {
	u, err := singleInt(p)
	if err != nil {
		return err
	}

	// A negative universe only flags the cell as fully enclosed.
	c.universe = max(u, -u)

	return nil
}

func (c *cellCard) setLat(p Param) error {
	n, err := singleInt(p)
	if err != nil {
		return err
	}

	switch LatticeKind(n) {
	case LatticeHexahedral, LatticeHexagonal:
		c.lat = LatticeKind(n)
	default:
		return invalidf("lat must be 1 or 2, got %d", n)
	}

	return nil
}

func (c *cellCard) setDensity(p Param) error {
	if len(p.Values) != 1 {
		return invalidf("takes one value")
	}

	v, err := common.ParseFloat(p.Values[0])
	if err != nil {
		return invalidf("%v", err)
	}

	c.density, c.hasDensity = v, true

	return nil
}

func singleInt(p Param) (int, error) {
	if len(p.Values) != 1 {
		return 0, invalidf("takes one integer")
	}

	n, err := common.ParseInt(p.Values[0])
	if err != nil {
		return 0, invalidf("%v", err)
	}

	return n, nil
}

func unparen(values []string) []string {
	if len(values) >= 2 && values[0] == "(" && values[len(values)-1] == ")" {
		return values[1 : len(values)-1]
	}

	return values
}

// bindRefs resolves the cell transform and every fill element transform.
func (c *cellCard) bindRefs() error {
	if err := bindTransform(c.trcl); err != nil {
		return cardErr(CardCell, c.ident, c.line, err)
	}

	if c.fill == nil {
		return nil
	}

	for _, e := range c.fill.elements {
		if err := bindTransform(e.Transform); err != nil {
			return cardErr(CardCell, c.ident, c.line, fmt.Errorf("fill universe %d: %w", e.Universe, err))
		}
	}

	return nil
}

func bindTransform(ref dataref.Ref[xform.Transform]) error {
	if ref == nil {
		return nil
	}

	if _, err := ref.Get(); err != nil {
		if errors.Is(err, dataref.ErrUnresolved) {
			return fmt.Errorf("%w: transform %d", ErrUnresolvedReference, ref.ID())
		}

		return err
	}

	return nil
}

// clone copies the card for a like-but cell. References are cloned so the
// copy binds independently of its base.
func (c *cellCard) clone() *cellCard {
	out := *c
	out.geom = slices.Clone(c.geom)
	out.params = slices.Clone(c.params)

	if c.trcl != nil {
		out.trcl = c.trcl.Clone()
	}

	if c.fill != nil {
		out.fill = c.fill.clone()
	}

	return &out
}
