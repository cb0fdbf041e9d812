package csg

import "mcnp-csg/internal/surface"

// Node is an element of a compiled CSG tree. Trees are never mutated after
// Compile returns them.
type Node interface {
	precedence() int
}

// Halfspace selects one side of a surface.
type Halfspace struct {
	Surface int
	Sense   surface.Sense
}

// CellRef stands for the full region of another cell. It only appears as
// the operand of a Complement.
type CellRef struct {
	Cell int
}

// Complement is the exterior of X.
type Complement struct {
	X Node
}

// Intersect is L ∩ R.
type Intersect struct {
	L, R Node
}

// Union is L ∪ R.
type Union struct {
	L, R Node
}

const (
	precUnion = iota + 1
	precIntersect
	precUnary
)

func (*Halfspace) precedence() int  { return precUnary }
func (*CellRef) precedence() int    { return precUnary }
func (*Complement) precedence() int { return precUnary }
func (*Intersect) precedence() int  { return precIntersect }
func (*Union) precedence() int      { return precUnion }

// Walk calls fn for every node in pre-order. Returning false from fn skips
// the node's children.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch v := n.(type) {
	case *Complement:
		Walk(v.X, fn)
	case *Intersect:
		Walk(v.L, fn)
		Walk(v.R, fn)
	case *Union:
		Walk(v.L, fn)
		Walk(v.R, fn)
	}
}

// SurfaceIDs returns the surfaces referenced by n, in first-use order.
func SurfaceIDs(n Node) []int {
	var out []int

	seen := map[int]bool{}

	Walk(n, func(n Node) bool {
		if h, ok := n.(*Halfspace); ok && !seen[h.Surface] {
			seen[h.Surface] = true
			out = append(out, h.Surface)
		}

		return true
	})

	return out
}

// CellIDs returns the cells referenced by n, in first-use order.
func CellIDs(n Node) []int {
	var out []int

	seen := map[int]bool{}

	Walk(n, func(n Node) bool {
		if c, ok := n.(*CellRef); ok && !seen[c.Cell] {
			seen[c.Cell] = true
			out = append(out, c.Cell)
		}

		return true
	})

	return out
}

// Halfspaces returns every half-space leaf in left-to-right order, with
// repeats.
func Halfspaces(n Node) []Halfspace {
	var out []Halfspace

	Walk(n, func(n Node) bool {
		if h, ok := n.(*Halfspace); ok {
			out = append(out, *h)
		}

		return true
	})

	return out
}
