package csg

import (
	"mcnp-csg/internal/surface"
	"mcnp-csg/internal/xform"
)

// Env supplies the resolved data a tree refers to.
type Env interface {
	// SurfaceSense classifies p against surface id.
	SurfaceSense(id int, p xform.Vec3) surface.Sense
	// CellContains reports whether p lies inside cell id.
	CellContains(id int, p xform.Vec3) bool
}

// Eval reports whether p lies in the region described by n. A point exactly
// on a surface belongs to neither of its half-spaces.
func Eval(n Node, p xform.Vec3, env Env) bool {
	switch v := n.(type) {
	case *Halfspace:
		return env.SurfaceSense(v.Surface, p) == v.Sense
	case *CellRef:
		return env.CellContains(v.Cell, p)
	case *Complement:
		return !Eval(v.X, p, env)
	case *Intersect:
		return Eval(v.L, p, env) && Eval(v.R, p, env)
	case *Union:
		return Eval(v.L, p, env) || Eval(v.R, p, env)
	default:
		return false
	}
}
