package xform

import (
	"errors"
	"fmt"
	"math"
)

// ErrEntryCount is returned when a transform is given an unsupported number of entries.
var ErrEntryCount = errors.New("unsupported transform entry count")

const identityTolerance = 1e-12

// Transform is a rigid-body transform from auxiliary to main coordinates.
type Transform struct {
	Rot   [3][3]float64
	Shift Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rot: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Translation returns a pure displacement.
func Translation(v Vec3) Transform {
	t := Identity()
	t.Shift = v

	return t
}

// FromEntries builds a transform from the numeric entries of a TR card or an
// inline trcl/fill transform. Accepted lengths:
//
//	3   displacement only
//	9   displacement plus the x' and y' axes; z' = x' × y'
//	12  displacement plus the full matrix
//	13  as 12, followed by m (1 or -1)
//
// With degrees set the matrix entries are angles in degrees. m = -1 means the
// displacement locates the main origin in auxiliary coordinates.
func FromEntries(vals []float64, degrees bool) (Transform, error) {
	t := Identity()

	switch len(vals) {
	case 3, 9, 12, 13:
	default:
		return t, fmt.Errorf("%w: %d", ErrEntryCount, len(vals))
	}

	t.Shift = Vec3{vals[0], vals[1], vals[2]}
	if len(vals) == 3 {
		return t, nil
	}

	m := vals[3:]
	cosOf := func(v float64) float64 {
		if degrees {
			return math.Cos(v * math.Pi / 180)
		}

		return v
	}

	xAxis := Vec3{cosOf(m[0]), cosOf(m[1]), cosOf(m[2])}
	yAxis := Vec3{cosOf(m[3]), cosOf(m[4]), cosOf(m[5])}

	zAxis := xAxis.Cross(yAxis)
	if len(m) >= 9 {
		zAxis = Vec3{cosOf(m[6]), cosOf(m[7]), cosOf(m[8])}
	}

	t.Rot = columns(xAxis, yAxis, zAxis)

	if len(m) == 10 {
		switch m[9] {
		case 1:
		case -1:
			// The given shift is in auxiliary coordinates: Rot*o_main_in_aux + Shift = 0.
			t.Shift = t.applyRot(t.Shift).Scale(-1)
		default:
			return t, fmt.Errorf("transform m entry must be 1 or -1, got %g", m[9])
		}
	}

	return t, nil
}

func columns(x, y, z Vec3) [3][3]float64 {
	var r [3][3]float64
	for i := range 3 {
		r[i][0] = x[i]
		r[i][1] = y[i]
		r[i][2] = z[i]
	}

	return r
}

func (t Transform) applyRot(p Vec3) Vec3 {
	var out Vec3
	for i := range 3 {
		out[i] = t.Rot[i][0]*p[0] + t.Rot[i][1]*p[1] + t.Rot[i][2]*p[2]
	}

	return out
}

// Apply maps p from auxiliary into main coordinates.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.applyRot(p).Add(t.Shift)
}

// ApplyDir rotates a direction without translating it.
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return t.applyRot(d)
}

// Inverse returns the transform mapping main into auxiliary coordinates.
// The rotation is assumed orthonormal.
func (t Transform) Inverse() Transform {
	var inv Transform
	for i := range 3 {
		for j := range 3 {
			inv.Rot[i][j] = t.Rot[j][i]
		}
	}

	inv.Shift = inv.applyRot(t.Shift).Scale(-1)

	return inv
}

// Then returns the transform that applies t first and outer second.
// Nested universes compose as child.Then(parent).
func (t Transform) Then(outer Transform) Transform {
	var out Transform
	for i := range 3 {
		for j := range 3 {
			out.Rot[i][j] = outer.Rot[i][0]*t.Rot[0][j] + outer.Rot[i][1]*t.Rot[1][j] + outer.Rot[i][2]*t.Rot[2][j]
		}
	}

	out.Shift = outer.Apply(t.Shift)

	return out
}

// IsIdentity reports whether t is the identity within a small tolerance.
func (t Transform) IsIdentity() bool {
	id := Identity()
	for i := range 3 {
		if math.Abs(t.Shift[i]) > identityTolerance {
			return false
		}

		for j := range 3 {
			if math.Abs(t.Rot[i][j]-id.Rot[i][j]) > identityTolerance {
				return false
			}
		}
	}

	return true
}

// Entries returns the 12-entry card form: displacement then matrix entries.
func (t Transform) Entries() []float64 {
	out := []float64{t.Shift[0], t.Shift[1], t.Shift[2]}
	for j := range 3 {
		for i := range 3 {
			out = append(out, t.Rot[i][j])
		}
	}

	return out
}
