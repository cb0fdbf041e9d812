package dataref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRegistry map[int]*string

func (m mapRegistry) Lookup(id int) (*string, bool) {
	v, ok := m[id]
	return v, ok
}

func TestValue(t *testing.T) {
	r := NewValue(42)
	assert.True(t, r.HasData())
	assert.Equal(t, 0, r.ID())

	v, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	c := r.Clone()
	v, err = c.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestLookup_ForwardReference(t *testing.T) {
	reg := mapRegistry{}
	r := NewLookup[*string](5, reg)

	assert.False(t, r.HasData())

	_, err := r.Get()
	require.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "id 5")
	assert.False(t, r.Bound())

	target := "tr5"
	reg[5] = &target

	assert.True(t, r.HasData())
	v, err := r.Get()
	require.NoError(t, err)
	assert.Same(t, &target, v)
	assert.True(t, r.Bound())
}

func TestLookup_CachesBinding(t *testing.T) {
	target := "first"
	reg := mapRegistry{1: &target}
	r := NewLookup[*string](1, reg)

	_, err := r.Get()
	require.NoError(t, err)

	other := "second"
	reg[1] = &other

	v, err := r.Get()
	require.NoError(t, err)
	assert.Same(t, &target, v)
}

func TestLookup_CloneIsIndependent(t *testing.T) {
	reg := mapRegistry{}
	r := NewLookup[*string](3, reg)
	c := r.Clone()

	target := "tr3"
	reg[3] = &target

	_, err := r.Get()
	require.NoError(t, err)
	assert.True(t, r.Bound())
	assert.False(t, c.(*Lookup[*string]).Bound())
	assert.Equal(t, 3, c.ID())

	v, err := c.Get()
	require.NoError(t, err)
	assert.Same(t, &target, v)
}

func TestRegistryFunc(t *testing.T) {
	r := NewLookup(7, RegistryFunc[int](func(id int) (int, bool) {
		return id * 2, id > 0
	}))

	v, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, 14, v)

	var nilReg *Lookup[int] = NewLookup[int](1, nil)
	assert.False(t, nilReg.HasData())
}
