package xform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got Vec3) {
	t.Helper()

	for i := range 3 {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestFromEntries_ShiftOnly(t *testing.T) {
	tr, err := FromEntries([]float64{1, 2, 3}, false)
	require.NoError(t, err)

	assertVecInDelta(t, Vec3{1, 2, 3}, tr.Apply(Vec3{}))
	assertVecInDelta(t, Vec3{2, 2, 3}, tr.Apply(Vec3{1, 0, 0}))
}

func TestFromEntries_RotationDegrees(t *testing.T) {
	// x' along main y, y' along main -x: a 90 degree rotation about z.
	tr, err := FromEntries([]float64{0, 0, 0, 90, 0, 90, 180, 90, 90, 90, 90, 0}, true)
	require.NoError(t, err)

	assertVecInDelta(t, Vec3{0, 1, 0}, tr.Apply(Vec3{1, 0, 0}))
	assertVecInDelta(t, Vec3{-1, 0, 0}, tr.Apply(Vec3{0, 1, 0}))
}

func TestFromEntries_TwoAxes(t *testing.T) {
	tr, err := FromEntries([]float64{0, 0, 0, 0, 1, 0, -1, 0, 0}, false)
	require.NoError(t, err)

	assertVecInDelta(t, Vec3{0, 0, 1}, tr.Apply(Vec3{0, 0, 1}))
}

func TestFromEntries_ReversedDisplacement(t *testing.T) {
	tr, err := FromEntries([]float64{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, -1}, false)
	require.NoError(t, err)

	// The main origin sits at x'=1, so aux origin is at main x=-1.
	assertVecInDelta(t, Vec3{-1, 0, 0}, tr.Apply(Vec3{}))

	_, err = FromEntries([]float64{1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 2}, false)
	assert.Error(t, err)
}

func TestFromEntries_BadCount(t *testing.T) {
	_, err := FromEntries([]float64{1, 2}, false)
	require.ErrorIs(t, err, ErrEntryCount)
}

func TestInverse(t *testing.T) {
	tr, err := FromEntries([]float64{1, 2, 3, 0, 1, 0, -1, 0, 0, 0, 0, 1}, false)
	require.NoError(t, err)

	p := Vec3{0.3, -4, 7}
	assertVecInDelta(t, p, tr.Inverse().Apply(tr.Apply(p)))
	assert.True(t, tr.Then(tr.Inverse()).IsIdentity())
}

func TestThen(t *testing.T) {
	inner := Translation(Vec3{1, 0, 0})
	rot, err := FromEntries([]float64{0, 0, 10, 0, 1, 0, -1, 0, 0, 0, 0, 1}, false)
	require.NoError(t, err)

	composed := inner.Then(rot)
	p := Vec3{0, 0, 0}
	assertVecInDelta(t, rot.Apply(inner.Apply(p)), composed.Apply(p))
	assertVecInDelta(t, Vec3{0, 1, 10}, composed.Apply(p))
}

func TestEntriesRoundTrip(t *testing.T) {
	tr, err := FromEntries([]float64{1, 2, 3, 0, 1, 0, -1, 0, 0, 0, 0, 1}, false)
	require.NoError(t, err)

	back, err := FromEntries(tr.Entries(), false)
	require.NoError(t, err)
	assert.Equal(t, tr, back)
}

func TestVec(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}

	assert.Equal(t, Vec3{0, 0, 1}, a.Cross(b))
	assert.InDelta(t, 0, a.Dot(b), 0)
	assert.InDelta(t, 5, Vec3{3, 4, 0}.Length(), 1e-12)
	assert.Equal(t, Vec3{}, Vec3{}.Unit())
	assertVecInDelta(t, Vec3{0.6, 0.8, 0}, Vec3{3, 4, 0}.Unit())
}
