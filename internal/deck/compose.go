package deck

import (
	"errors"
	"fmt"

	"mcnp-csg/internal/xform"
)

// ErrFillDepth is returned when universes nest deeper than
// Options.MaxFillDepth.
var ErrFillDepth = errors.New("fill nesting too deep")

// Instance is one placement of a cell in the flattened geometry. It is
// read-only outside this package.
type Instance struct {
	cell     Cell
	universe int
	parent   *Instance
	index    [3]int
	lattice  bool
	frame    xform.Transform
	// transform includes the element offset for lattice elements.
	transform xform.Transform
	// home maps the holding universe, shifted with the lattice element,
	// into the root frame. Complemented cells are evaluated through it.
	home  xform.Transform
	depth int

	children []*Instance
}

func (in *Instance) Cell() Cell        { return in.cell }
func (in *Instance) Universe() int     { return in.universe }
func (in *Instance) Parent() *Instance { return in.parent }
func (in *Instance) Depth() int        { return in.depth }
func (in *Instance) InLattice() bool   { return in.lattice }
func (in *Instance) Index() [3]int     { return in.index }

// Frame maps the coordinates of the instance's universe into the root frame.
func (in *Instance) Frame() xform.Transform { return in.frame }

// Transform maps the cell's own coordinates into the root frame. For a
// lattice element it includes the element offset.
func (in *Instance) Transform() xform.Transform { return in.transform }

// Children returns the instances placed by this instance's fill.
func (in *Instance) Children() []*Instance { return append([]*Instance(nil), in.children...) }

// Path returns the cell numbers from the root down to in.
func (in *Instance) Path() []int {
	var out []int
	for p := in; p != nil; p = p.parent {
		out = append([]int{p.cell.Ident()}, out...)
	}

	return out
}

func (d *Deck) compose() error {
	d.instances = nil

	_, err := d.place(0, nil, xform.Identity(), 0)

	return err
}

// place emits the cells of universe u seen through frame, then recurses
// into their fills.
func (d *Deck) place(u int, parent *Instance, frame xform.Transform, depth int) ([]*Instance, error) {
	if depth > d.opts.MaxFillDepth {
		return nil, fmt.Errorf("%w: more than %d levels below universe 0", ErrFillDepth, d.opts.MaxFillDepth)
	}

	var placed []*Instance

	for _, c := range d.CellsOfUniverse(u) {
		cc := c.card()

		local := cellTrcl(cc).Then(frame)

		if cc.fill == nil || cc.lat == LatticeNone {
			in := d.emit(c, u, parent, frame, local, depth)
			placed = append(placed, in)

			if cc.fill == nil {
				continue
			}

			e := cc.fill.elements[0]
			if e.Universe == 0 {
				continue
			}

			kids, err := d.place(e.Universe, in, elementFrame(e).Then(local), depth+1)
			if err != nil {
				return nil, err
			}

			in.children = kids

			continue
		}

		lat, err := d.placeLattice(c, u, parent, frame, local, depth)
		if err != nil {
			return nil, err
		}

		placed = append(placed, lat...)
	}

	return placed, nil
}

func (d *Deck) placeLattice(c Cell, u int, parent *Instance, frame, local xform.Transform, depth int) ([]*Instance, error) {
	cc := c.card()
	l := cc.fill
	trcl := cellTrcl(cc)

	if l.unbounded {
		d.diags.AddInfo(CodeUnboundedLattice, "lattice has no index ranges; only element (0,0,0) is placed",
			fmt.Sprintf("cell %d", cc.ident), cc.line)
	}

	var (
		placed []*Instance
		self   int
	)

	for n, e := range l.elements {
		if e.Universe == 0 {
			continue
		}

		idx := l.Index(n)
		shift := xform.Translation(l.Offset(idx))

		in := d.emit(c, u, parent, frame, shift.Then(local), depth)
		in.index = idx
		in.lattice = true
		in.home = trcl.Inverse().Then(in.transform)
		placed = append(placed, in)

		if e.Universe == cc.universe {
			self++
			continue
		}

		kids, err := d.place(e.Universe, in, elementFrame(e).Then(shift).Then(local), depth+1)
		if err != nil {
			return nil, err
		}

		in.children = kids
	}

	if self > 0 {
		d.diags.AddInfo(CodeSelfFill,
			fmt.Sprintf("%d lattice elements are filled with the lattice's own universe %d and not expanded", self, cc.universe),
			fmt.Sprintf("cell %d", cc.ident), cc.line)
	}

	return placed, nil
}

func (d *Deck) emit(c Cell, u int, parent *Instance, frame, t xform.Transform, depth int) *Instance {
	in := &Instance{
		cell:      c,
		universe:  u,
		parent:    parent,
		frame:     frame,
		transform: t,
		home:      frame,
		depth:     depth,
	}

	d.instances = append(d.instances, in)

	return in
}

// cellTrcl returns the cell's trcl transform, or the identity.
func cellTrcl(cc *cellCard) xform.Transform {
	if cc.trcl == nil {
		return xform.Identity()
	}

	t, err := cc.trcl.Get()
	if err != nil {
		return xform.Identity()
	}

	return t
}

func elementFrame(e FillElement) xform.Transform {
	if e.Transform == nil {
		return xform.Identity()
	}

	t, err := e.Transform.Get()
	if err != nil {
		return xform.Identity()
	}

	return t
}
