package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcnp-csg/internal/surface"
	"mcnp-csg/internal/xform"
)

// planeEnv treats surface n as the plane x = n and cell n as the slab n < x < n+1.
type planeEnv struct{}

func (planeEnv) SurfaceSense(id int, p xform.Vec3) surface.Sense {
	switch {
	case p[0] > float64(id):
		return surface.SensePositive
	case p[0] < float64(id):
		return surface.SenseNegative
	default:
		return surface.SenseOn
	}
}

func (planeEnv) CellContains(id int, p xform.Vec3) bool {
	return p[0] > float64(id) && p[0] < float64(id+1)
}

func TestEval(t *testing.T) {
	tests := []struct {
		text string
		x    float64
		want bool
	}{
		{"1 -3", 2, true},
		{"1 -3", 4, false},
		{"-1 : 3", 0, true},
		{"-1 : 3", 2, false},
		{"-1 : 3", 5, true},
		{"1 -5 #2", 2.5, false},
		{"1 -5 #2", 3.5, true},
		{"#(1 -3)", 2, false},
		{"#(1 -3)", 0, true},
		{"1", 1, false},
		{"-1", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n := mustParse(t, tt.text)
			assert.Equal(t, tt.want, Eval(n, xform.Vec3{tt.x, 0, 0}, planeEnv{}))
		})
	}
}
