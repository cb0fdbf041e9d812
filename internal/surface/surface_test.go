package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcnp-csg/internal/xform"
)

func mustNew(t *testing.T, m string, args ...float64) Surface {
	t.Helper()

	s, err := New(m, args)
	require.NoError(t, err)

	return s
}

func TestNew_UnknownMnemonic(t *testing.T) {
	_, err := New("pq", []float64{1})
	require.ErrorIs(t, err, ErrUnknownMnemonic)
	assert.Contains(t, err.Error(), `"pq"`)
	assert.Contains(t, err.Error(), "did you mean")

	_, err = New("zzzzzz", []float64{1})
	require.ErrorIs(t, err, ErrUnknownMnemonic)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestNew_ArgumentCount(t *testing.T) {
	tests := []struct {
		mnemonic string
		n        int
	}{
		{"px", 2},
		{"so", 0},
		{"s", 3},
		{"c/z", 2},
		{"k/x", 6},
		{"gq", 9},
		{"rpp", 5},
		{"rhp", 10},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic, func(t *testing.T) {
			_, err := New(tt.mnemonic, make([]float64, tt.n))
			require.ErrorIs(t, err, ErrArgumentCount)
		})
	}
}

func TestNew_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		args     []float64
	}{
		{"rcc zero height", "rcc", []float64{0, 0, 0, 0, 0, 0, 1}},
		{"rcc zero radius", "rcc", []float64{0, 0, 0, 0, 0, 1, 0}},
		{"box zero edge", "box", []float64{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1}},
		{"rpp flat", "rpp", []float64{0, 1, 0, 1, 2, 2}},
		{"trc zero height", "trc", []float64{0, 0, 0, 0, 0, 0, 2, 1}},
		{"rec axis along height", "rec", []float64{0, 0, 0, 0, 0, 4, 0, 0, 2, 1}},
		{"rhp zero facet", "rhp", []float64{0, 0, 0, 0, 0, 1, 0, 0, 0}},
		{"ell zero axis", "ell", []float64{0, 0, 0, 0, 0, 0, -1}},
		{"wed coplanar", "wed", []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mnemonic, tt.args)
			require.ErrorIs(t, err, ErrDegenerate)
			assert.Contains(t, err.Error(), `"`+tt.mnemonic+`"`)
		})
	}
}

func TestNew_CaseInsensitiveAndCopiesArgs(t *testing.T) {
	args := []float64{5}
	s := mustNew(t, "PZ", args...)
	args[0] = 99

	assert.Equal(t, "pz", s.Mnemonic())
	assert.Equal(t, []float64{5}, s.Coefficients())
	assert.Equal(t, KindPlane, s.Kind())

	c := s.Coefficients()
	c[0] = -1
	assert.Equal(t, []float64{5}, s.Coefficients())
}

func TestSenseOf(t *testing.T) {
	tests := []struct {
		name string
		s    Surface
		p    xform.Vec3
		want Sense
	}{
		{"px above", mustNew(t, "px", 1), xform.Vec3{2, 0, 0}, SensePositive},
		{"px below", mustNew(t, "px", 1), xform.Vec3{0, 0, 0}, SenseNegative},
		{"px on", mustNew(t, "px", 1), xform.Vec3{1, 5, 5}, SenseOn},
		{"p general", mustNew(t, "p", 1, 1, 0, 1), xform.Vec3{1, 1, 0}, SensePositive},
		{"so inside", mustNew(t, "so", 2), xform.Vec3{1, 0, 0}, SenseNegative},
		{"s outside", mustNew(t, "s", 5, 0, 0, 1), xform.Vec3{0, 0, 0}, SensePositive},
		{"sz inside", mustNew(t, "sz", 3, 1), xform.Vec3{0, 0, 3.5}, SenseNegative},
		{"cz inside", mustNew(t, "cz", 1), xform.Vec3{0.5, 0, 100}, SenseNegative},
		{"c/x outside", mustNew(t, "c/x", 2, 2, 1), xform.Vec3{0, 0, 0}, SensePositive},
		{"kz inside", mustNew(t, "kz", 0, 1), xform.Vec3{0.5, 0, 1}, SenseNegative},
		{"kz wrong sheet", mustNew(t, "kz", 0, 1, 1), xform.Vec3{0, 0, -1}, SensePositive},
		{"gq sphere", mustNew(t, "gq", 1, 1, 1, 0, 0, 0, 0, 0, 0, -4), xform.Vec3{1, 1, 1}, SenseNegative},
		{"sq shifted sphere", mustNew(t, "sq", 1, 1, 1, 0, 0, 0, -1, 10, 0, 0), xform.Vec3{10.5, 0, 0}, SenseNegative},
		{"tz tube", mustNew(t, "tz", 0, 0, 0, 5, 1, 1), xform.Vec3{5, 0, 0}, SenseNegative},
		{"tz hole", mustNew(t, "tz", 0, 0, 0, 5, 1, 1), xform.Vec3{0, 0, 0}, SensePositive},
		{"rpp inside", mustNew(t, "rpp", -1, 1, -1, 1, -1, 1), xform.Vec3{0, 0, 0}, SenseNegative},
		{"rpp outside", mustNew(t, "rpp", -1, 1, -1, 1, -1, 1), xform.Vec3{0, 2, 0}, SensePositive},
		{"box inside", mustNew(t, "box", 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 2), xform.Vec3{1, 1, 1}, SenseNegative},
		{"sph outside", mustNew(t, "sph", 0, 0, 0, 1), xform.Vec3{0, 0, 2}, SensePositive},
		{"rcc inside", mustNew(t, "rcc", 0, 0, 0, 0, 0, 10, 1), xform.Vec3{0.5, 0, 5}, SenseNegative},
		{"rcc above", mustNew(t, "rcc", 0, 0, 0, 0, 0, 10, 1), xform.Vec3{0, 0, 11}, SensePositive},
		{"trc narrow top", mustNew(t, "trc", 0, 0, 0, 0, 0, 10, 2, 1), xform.Vec3{1.8, 0, 9}, SensePositive},
		{"trc wide base", mustNew(t, "trc", 0, 0, 0, 0, 0, 10, 2, 1), xform.Vec3{1.8, 0, 0.5}, SenseNegative},
		{"rec inside", mustNew(t, "rec", 0, 0, 0, 0, 0, 4, 2, 0, 0, 1), xform.Vec3{1.5, 0, 1}, SenseNegative},
		{"rec outside minor", mustNew(t, "rec", 0, 0, 0, 0, 0, 4, 2, 0, 0, 1), xform.Vec3{0, 1.5, 1}, SensePositive},
		{"rhp inside", mustNew(t, "rhp", 0, 0, 0, 0, 0, 1, 1, 0, 0), xform.Vec3{0, 1.1, 0.5}, SenseNegative},
		{"rhp corner", mustNew(t, "rhp", 0, 0, 0, 0, 0, 1, 1, 0, 0), xform.Vec3{0, 1.2, 0.5}, SensePositive},
		{"ell foci", mustNew(t, "ell", -1, 0, 0, 1, 0, 0, 4), xform.Vec3{1.9, 0, 0}, SenseNegative},
		{"ell center", mustNew(t, "ell", 0, 0, 0, 2, 0, 0, -1), xform.Vec3{0, 0.9, 0}, SenseNegative},
		{"ell center outside", mustNew(t, "ell", 0, 0, 0, 2, 0, 0, -1), xform.Vec3{0, 1.1, 0}, SensePositive},
		{"wed inside", mustNew(t, "wed", 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1), xform.Vec3{0.2, 0.2, 0.5}, SenseNegative},
		{"wed hypotenuse", mustNew(t, "wed", 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1), xform.Vec3{0.6, 0.6, 0.5}, SensePositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SenseOf(tt.s, tt.p))
		})
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindSphere, mustNew(t, "so", 1).Kind())
	assert.Equal(t, KindMacrobody, mustNew(t, "sph", 0, 0, 0, 1).Kind())
	assert.Equal(t, KindCylinder, mustNew(t, "cx", 1).Kind())
	assert.Equal(t, KindCone, mustNew(t, "kx", 1, 1).Kind())
	assert.Equal(t, KindQuadric, mustNew(t, "sq", 1, 1, 1, 0, 0, 0, -1, 0, 0, 0).Kind())
	assert.Equal(t, KindTorus, mustNew(t, "tx", 0, 0, 0, 2, 1, 1).Kind())

	assert.Equal(t, "Macrobody", KindMacrobody.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "-", SenseNegative.String())
}

func TestMnemonicsAndArity(t *testing.T) {
	m := Mnemonics()
	assert.Contains(t, m, "rpp")
	assert.IsIncreasing(t, m)

	a, ok := Arity("K/Z")
	require.True(t, ok)
	assert.Equal(t, []int{4, 5}, a)

	_, ok = Arity("nope")
	assert.False(t, ok)
}
