package deck

import (
	"mcnp-csg/internal/csg"
	"mcnp-csg/internal/surface"
	"mcnp-csg/internal/xform"
)

// geomEnv evaluates cell trees against the deck's surfaces. outer is the
// point in the coordinates of the universe holding the cell, used for
// complemented cells.
type geomEnv struct {
	d     *Deck
	outer xform.Vec3
}

func (e geomEnv) SurfaceSense(id int, p xform.Vec3) surface.Sense {
	s, ok := e.d.Surface(id)
	if !ok {
		return surface.SenseOn
	}

	return s.Sense(p)
}

func (e geomEnv) CellContains(id int, _ xform.Vec3) bool {
	return e.d.Contains(id, e.outer)
}

// Contains reports whether p, given in the coordinates of the cell's
// universe, lies inside cell id. The cell transform is applied and
// complemented cells are evaluated in the same universe. Points on a
// bounding surface are outside. It reports false until the geometry is
// resolved.
func (d *Deck) Contains(id int, p xform.Vec3) bool {
	if !d.resolved {
		return false
	}

	c, ok := d.Cell(id)
	if !ok || c.Tree() == nil {
		return false
	}

	q := p
	if ref := c.Trcl(); ref != nil {
		if t, err := ref.Get(); err == nil {
			q = t.Inverse().Apply(p)
		}
	}

	return csg.Eval(c.Tree(), q, geomEnv{d: d, outer: p})
}

// CellAt locates a point given in root coordinates. It returns the chain of
// instances from universe 0 down to the innermost cell holding p, or false
// when no root cell contains it. The geometry must be resolved.
func (d *Deck) CellAt(p xform.Vec3) ([]*Instance, bool) {
	var roots []*Instance

	for _, in := range d.instances {
		if in.parent == nil {
			roots = append(roots, in)
		}
	}

	var path []*Instance

	for level := roots; level != nil; {
		hit := d.find(level, p)
		if hit == nil {
			break
		}

		path = append(path, hit)
		level = hit.children
	}

	return path, len(path) > 0
}

func (d *Deck) find(candidates []*Instance, p xform.Vec3) *Instance {
	for _, in := range candidates {
		if d.instanceContains(in, p) {
			return in
		}
	}

	return nil
}

func (d *Deck) instanceContains(in *Instance, p xform.Vec3) bool {
	tree := in.cell.Tree()
	if tree == nil {
		return false
	}

	q := in.transform.Inverse().Apply(p)
	outer := in.home.Inverse().Apply(p)

	return csg.Eval(tree, q, geomEnv{d: d, outer: outer})
}
