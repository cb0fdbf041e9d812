package surface

import (
	"errors"
	"fmt"
	"math"

	"mcnp-csg/internal/xform"
)

// Box is a right parallelepiped: a corner and three edge vectors. RPP cards
// produce an axis-aligned Box.
type Box struct {
	base
	Corner xform.Vec3
	Edges  [3]xform.Vec3
}

func newBox(b base) Surface {
	a := b.args
	return &Box{
		base:   b,
		Corner: vec(a),
		Edges:  [3]xform.Vec3{vec(a[3:]), vec(a[6:]), vec(a[9:])},
	}
}

func newRPP(b base) Surface {
	a := b.args
	return &Box{
		base:   b,
		Corner: xform.Vec3{a[0], a[2], a[4]},
		Edges: [3]xform.Vec3{
			{a[1] - a[0], 0, 0},
			{0, a[3] - a[2], 0},
			{0, 0, a[5] - a[4]},
		},
	}
}

func (s *Box) Kind() Kind { return KindMacrobody }

func (s *Box) validate() error { return nonZero("edge", s.Edges[:]...) }

func (s *Box) Eval(p xform.Vec3) float64 {
	d := p.Sub(s.Corner)
	f := math.Inf(-1)

	for _, e := range s.Edges {
		l := e.Length()
		t := d.Dot(e) / l
		f = max(f, -t, t-l)
	}

	return f
}

// RightCircularCylinder is an RCC: base center, height vector and radius.
type RightCircularCylinder struct {
	base
	Base   xform.Vec3
	Height xform.Vec3
	Radius float64
}

func newRCC(b base) Surface {
	a := b.args
	return &RightCircularCylinder{base: b, Base: vec(a), Height: vec(a[3:]), Radius: a[6]}
}

func (s *RightCircularCylinder) Kind() Kind { return KindMacrobody }

func (s *RightCircularCylinder) validate() error {
	if s.Radius <= 0 {
		return errors.New("radius must be positive")
	}

	return nonZero("height", s.Height)
}

func (s *RightCircularCylinder) Eval(p xform.Vec3) float64 {
	t, r, h := axial(p, s.Base, s.Height)
	return max(-t, t-h, r-s.Radius)
}

// TruncatedCone is a TRC: base center, height vector, base and top radii.
type TruncatedCone struct {
	base
	Base        xform.Vec3
	Height      xform.Vec3
	Bottom, Top float64
}

func newTRC(b base) Surface {
	a := b.args
	return &TruncatedCone{base: b, Base: vec(a), Height: vec(a[3:]), Bottom: a[6], Top: a[7]}
}

func (s *TruncatedCone) Kind() Kind { return KindMacrobody }

func (s *TruncatedCone) validate() error { return nonZero("height", s.Height) }

func (s *TruncatedCone) Eval(p xform.Vec3) float64 {
	t, r, h := axial(p, s.Base, s.Height)
	radius := s.Bottom + (s.Top-s.Bottom)*t/h

	return max(-t, t-h, r-radius)
}

// EllipticalCylinder is a REC: base center, height vector, major axis vector
// and either a minor axis vector or a minor radius.
type EllipticalCylinder struct {
	base
	Base   xform.Vec3
	Height xform.Vec3
	Major  xform.Vec3
	Minor  xform.Vec3
}

func newREC(b base) Surface {
	a := b.args
	s := &EllipticalCylinder{base: b, Base: vec(a), Height: vec(a[3:]), Major: vec(a[6:])}

	if len(a) == 12 {
		s.Minor = vec(a[9:])
	} else {
		s.Minor = s.Height.Cross(s.Major).Unit().Scale(a[9])
	}

	return s
}

func (s *EllipticalCylinder) Kind() Kind { return KindMacrobody }

func (s *EllipticalCylinder) validate() error {
	if err := nonZero("height", s.Height); err != nil {
		return err
	}

	return nonZero("axis", s.Major, s.Minor)
}

func (s *EllipticalCylinder) Eval(p xform.Vec3) float64 {
	t, _, h := axial(p, s.Base, s.Height)
	d := p.Sub(s.Base)

	lm := s.Major.Length()
	ln := s.Minor.Length()
	u := d.Dot(s.Major) / (lm * lm)
	v := d.Dot(s.Minor) / (ln * ln)

	return max(-t, t-h, u*u+v*v-1)
}

// HexPrism is an RHP/HEX: base center, height vector and the vectors from
// the axis to the centers of three facets. The nine-entry form gives only the
// first and derives the others by 60° rotations about the axis.
type HexPrism struct {
	base
	Base   xform.Vec3
	Height xform.Vec3
	Facets [3]xform.Vec3
}

func newHexPrism(b base) Surface {
	a := b.args
	s := &HexPrism{base: b, Base: vec(a), Height: vec(a[3:])}
	s.Facets[0] = vec(a[6:])

	if len(a) == 15 {
		s.Facets[1] = vec(a[9:])
		s.Facets[2] = vec(a[12:])
	} else {
		axis := s.Height.Unit()
		s.Facets[1] = rotateAbout(s.Facets[0], axis, math.Pi/3)
		s.Facets[2] = rotateAbout(s.Facets[0], axis, 2*math.Pi/3)
	}

	return s
}

func (s *HexPrism) Kind() Kind { return KindMacrobody }

func (s *HexPrism) validate() error {
	if err := nonZero("height", s.Height); err != nil {
		return err
	}

	return nonZero("facet", s.Facets[:]...)
}

func (s *HexPrism) Eval(p xform.Vec3) float64 {
	t, _, h := axial(p, s.Base, s.Height)
	d := p.Sub(s.Base)
	f := max(-t, t-h)

	for _, r := range s.Facets {
		l := r.Length()
		q := d.Dot(r) / l
		f = max(f, q-l, -q-l)
	}

	return f
}

// Ellipsoid is an ELL. A positive last entry gives the foci and the major
// axis length; a negative one gives the center, the major semi-axis vector
// and the minor radius.
type Ellipsoid struct {
	base
	V1, V2 xform.Vec3
	R      float64
}

func newEllipsoid(b base) Surface {
	a := b.args
	return &Ellipsoid{base: b, V1: vec(a), V2: vec(a[3:]), R: a[6]}
}

func (s *Ellipsoid) Kind() Kind { return KindMacrobody }

func (s *Ellipsoid) validate() error {
	switch {
	case s.R == 0:
		return errors.New("axis length must not be zero")
	case s.R < 0:
		return nonZero("major axis", s.V2)
	default:
		return nil
	}
}

func (s *Ellipsoid) Eval(p xform.Vec3) float64 {
	if s.R > 0 {
		return p.Sub(s.V1).Length() + p.Sub(s.V2).Length() - s.R
	}

	t, r, major := axial(p, s.V1, s.V2)
	minor := -s.R

	return (t*t)/(major*major) + (r*r)/(minor*minor) - 1
}

// Wedge is a WED: a vertex, two base edge vectors spanning a right triangle
// and a height vector.
type Wedge struct {
	base
	Vertex xform.Vec3
	Edges  [3]xform.Vec3
}

func newWedge(b base) Surface {
	a := b.args
	return &Wedge{
		base:   b,
		Vertex: vec(a),
		Edges:  [3]xform.Vec3{vec(a[3:]), vec(a[6:]), vec(a[9:])},
	}
}

func (s *Wedge) Kind() Kind { return KindMacrobody }

func (s *Wedge) validate() error {
	if s.Edges[0].Dot(s.Edges[1].Cross(s.Edges[2])) == 0 {
		return errors.New("edge vectors are coplanar")
	}

	return nil
}

// Eval solves p - v = α·e1 + β·e2 + γ·e3 by Cramer's rule.
func (s *Wedge) Eval(p xform.Vec3) float64 {
	d := p.Sub(s.Vertex)
	e1, e2, e3 := s.Edges[0], s.Edges[1], s.Edges[2]

	det := e1.Dot(e2.Cross(e3))
	alpha := d.Dot(e2.Cross(e3)) / det
	beta := e1.Dot(d.Cross(e3)) / det
	gamma := e1.Dot(e2.Cross(d)) / det

	return max(-alpha, -beta, alpha+beta-1, -gamma, gamma-1)
}

// nonZero fails for the first zero-length vector among vs.
func nonZero(what string, vs ...xform.Vec3) error {
	for i, v := range vs {
		if v.Length() == 0 {
			if len(vs) == 1 {
				return fmt.Errorf("%s vector has zero length", what)
			}

			return fmt.Errorf("%s vector %d has zero length", what, i+1)
		}
	}

	return nil
}

// axial splits p relative to an axis starting at origin along dir into the
// distance along the axis, the radial distance and the axis length.
func axial(p, origin, dir xform.Vec3) (t, r, length float64) {
	length = dir.Length()
	u := dir.Scale(1 / length)
	d := p.Sub(origin)
	t = d.Dot(u)
	r = d.Sub(u.Scale(t)).Length()

	return t, r, length
}

// rotateAbout rotates v by angle about the unit axis k (Rodrigues).
func rotateAbout(v, k xform.Vec3, angle float64) xform.Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return v.Scale(c).Add(k.Cross(v).Scale(s)).Add(k.Scale(k.Dot(v) * (1 - c)))
}
