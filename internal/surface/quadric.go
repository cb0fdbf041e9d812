package surface

import (
	"math"

	"mcnp-csg/internal/xform"
)

// Plane is n·p - d = 0.
type Plane struct {
	base
	Normal xform.Vec3
	D      float64
}

func newPlane(b base) Surface {
	return &Plane{base: b, Normal: vec(b.args), D: b.args[3]}
}

func newAxisPlane(axis int) builder {
	return func(b base) Surface {
		return &Plane{base: b, Normal: axisVec(axis), D: b.args[0]}
	}
}

func (s *Plane) Kind() Kind { return KindPlane }

func (s *Plane) Eval(p xform.Vec3) float64 { return s.Normal.Dot(p) - s.D }

// Sphere is |p - c|² - r² = 0.
type Sphere struct {
	base
	Center xform.Vec3
	Radius float64
}

func newSphere(b base) Surface {
	return &Sphere{base: b, Center: vec(b.args), Radius: b.args[3]}
}

// newSphereAt builds so (axis -1) and sx/sy/sz.
func newSphereAt(axis int) builder {
	return func(b base) Surface {
		s := &Sphere{base: b, Radius: b.args[len(b.args)-1]}
		if axis >= 0 {
			s.Center[axis] = b.args[0]
		}

		return s
	}
}

func (s *Sphere) Kind() Kind {
	if s.mnemonic == "sph" {
		return KindMacrobody
	}

	return KindSphere
}

func (s *Sphere) Eval(p xform.Vec3) float64 {
	d := p.Sub(s.Center)
	return d.Dot(d) - s.Radius*s.Radius
}

// Cylinder is an infinite cylinder parallel to a coordinate axis.
type Cylinder struct {
	base
	Axis   int
	Center xform.Vec3 // only the two components off Axis are used
	Radius float64
}

func newCylinder(axis int, offset bool) builder {
	return func(b base) Surface {
		c := &Cylinder{base: b, Axis: axis, Radius: b.args[len(b.args)-1]}
		if offset {
			u, v := otherAxes(axis)
			c.Center[u] = b.args[0]
			c.Center[v] = b.args[1]
		}

		return c
	}
}

func (s *Cylinder) Kind() Kind { return KindCylinder }

func (s *Cylinder) Eval(p xform.Vec3) float64 {
	u, v := otherAxes(s.Axis)
	du := p[u] - s.Center[u]
	dv := p[v] - s.Center[v]

	return du*du + dv*dv - s.Radius*s.Radius
}

// Cone is a cone parallel to a coordinate axis with apex Apex and t² = T2.
// Sheet selects one nappe (+1 or -1); zero means both.
type Cone struct {
	base
	Axis  int
	Apex  xform.Vec3
	T2    float64
	Sheet int
}

func newCone(axis int, offset bool) builder {
	return func(b base) Surface {
		c := &Cone{base: b, Axis: axis}

		rest := b.args
		if offset {
			c.Apex = vec(b.args)
			rest = b.args[3:]
		} else {
			c.Apex[axis] = b.args[0]
			rest = b.args[1:]
		}

		c.T2 = rest[0]
		if len(rest) > 1 {
			c.Sheet = int(math.Copysign(1, rest[1]))
		}

		return c
	}
}

func (s *Cone) Kind() Kind { return KindCone }

func (s *Cone) Eval(p xform.Vec3) float64 {
	d := p.Sub(s.Apex)
	u, v := otherAxes(s.Axis)
	along := d[s.Axis]
	f := d[u]*d[u] + d[v]*d[v] - s.T2*along*along

	// Points on the far side of the apex from the selected nappe are outside.
	if s.Sheet != 0 && along*float64(s.Sheet) < 0 {
		return math.Abs(f) + 1
	}

	return f
}

// Quadric is the general second-order surface
//
//	Ax² + By² + Cz² + Dxy + Eyz + Fzx + Gx + Hy + Jz + K = 0
//
// SQ cards are expanded into this form at construction.
type Quadric struct {
	base
	C [10]float64
}

func newGeneralQuadric(b base) Surface {
	q := &Quadric{base: b}
	copy(q.C[:], b.args)

	return q
}

// newSpecialQuadric expands
// A(x-x̄)² + B(y-ȳ)² + C(z-z̄)² + 2D(x-x̄) + 2E(y-ȳ) + 2F(z-z̄) + G.
func newSpecialQuadric(b base) Surface {
	a := b.args
	x0, y0, z0 := a[7], a[8], a[9]

	q := &Quadric{base: b}
	q.C[0], q.C[1], q.C[2] = a[0], a[1], a[2]
	q.C[6] = -2*a[0]*x0 + 2*a[3]
	q.C[7] = -2*a[1]*y0 + 2*a[4]
	q.C[8] = -2*a[2]*z0 + 2*a[5]
	q.C[9] = a[0]*x0*x0 + a[1]*y0*y0 + a[2]*z0*z0 -
		2*a[3]*x0 - 2*a[4]*y0 - 2*a[5]*z0 + a[6]

	return q
}

func (s *Quadric) Kind() Kind { return KindQuadric }

func (s *Quadric) Eval(p xform.Vec3) float64 {
	x, y, z := p[0], p[1], p[2]
	c := s.C

	return c[0]*x*x + c[1]*y*y + c[2]*z*z +
		c[3]*x*y + c[4]*y*z + c[5]*z*x +
		c[6]*x + c[7]*y + c[8]*z + c[9]
}

// Torus is an elliptic torus whose axis is parallel to a coordinate axis.
// A is the major radius, B the semi-axis along the torus axis and C the
// semi-axis perpendicular to it.
type Torus struct {
	base
	Axis    int
	Center  xform.Vec3
	A, B, C float64
}

func newTorus(axis int) builder {
	return func(b base) Surface {
		return &Torus{base: b, Axis: axis, Center: vec(b.args), A: b.args[3], B: b.args[4], C: b.args[5]}
	}
}

func (s *Torus) Kind() Kind { return KindTorus }

func (s *Torus) Eval(p xform.Vec3) float64 {
	d := p.Sub(s.Center)
	u, v := otherAxes(s.Axis)
	along := d[s.Axis]
	radial := math.Sqrt(d[u]*d[u]+d[v]*d[v]) - s.A

	return along*along/(s.B*s.B) + radial*radial/(s.C*s.C) - 1
}

func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 2, 0
	default:
		return 0, 1
	}
}
