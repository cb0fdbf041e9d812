package deck

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcnp-csg/internal/dataref"
	"mcnp-csg/internal/xform"
)

const fillDeck = `fill test
1 0 -1 fill=1 (2)
2 0 1
3 0 -2 u=1
4 0 2 u=1

1 so 10
2 so 1

tr2 0 0 3
`

const latticeDeck = `lattice test
1 0 -10 fill=1
2 0 10
3 0 -1 2 -3 4 u=1 lat=1 fill=0:1 0:0 0:0 2 3
4 0 -5 u=2
5 0 5 u=2
6 0 -5 u=3
7 0 5 u=3

10 so 100
1 px 1
2 px -1
3 py 1
4 py -1
5 so 0.5
`

func instanceCells(ins []*Instance) []int {
	out := make([]int, len(ins))
	for i, in := range ins {
		out[i] = in.Cell().Ident()
	}

	return out
}

func pathCells(ins []*Instance) []int {
	if len(ins) == 0 {
		return nil
	}

	return ins[len(ins)-1].Path()
}

func TestFill_Simple(t *testing.T) {
	d := build(t, fillDeck)

	host, _ := d.Cell(1)
	require.True(t, host.HasFill())

	fill := host.Fill()
	assert.Equal(t, LatticeNone, fill.Kind())
	require.Equal(t, 1, fill.Len())
	assert.Equal(t, 1, fill.Elements()[0].Universe)
	assert.Equal(t, 2, fill.Elements()[0].Transform.ID())

	elems := fill.Elements()
	elems[0].Universe = 7
	assert.Equal(t, 1, fill.Elements()[0].Universe)

	ins := d.Instances()
	assert.Equal(t, []int{1, 3, 4, 2}, instanceCells(ins))
	assert.Equal(t, 1, ins[1].Depth())
	assert.Same(t, ins[0], ins[1].Parent())
	assert.Equal(t, xform.Vec3{0, 0, 3}, ins[1].Transform().Shift)
	assert.Len(t, ins[0].Children(), 2)

	kids := ins[0].Children()
	kids[0] = nil
	assert.NotNil(t, ins[0].Children()[0])

	path, ok := d.CellAt(xform.Vec3{0, 0, 3.5})
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, pathCells(path))

	path, _ = d.CellAt(xform.Vec3{0, 0, 1.5})
	assert.Equal(t, []int{1, 4}, pathCells(path))

	path, _ = d.CellAt(xform.Vec3{0, 0, 20})
	assert.Equal(t, []int{2}, pathCells(path))

	_, ok = d.CellAt(xform.Vec3{10, 0, 0})
	assert.False(t, ok)
}

func TestFill_InlineTransformWithTrcl(t *testing.T) {
	d := build(t, `trcl chain
1 0 -1 trcl=(5 0 0) fill=1 (0 1 0)
2 0 1 trcl=(5 0 0)
3 0 -2 u=1
4 0 2 u=1

1 so 10
2 so 1
`)

	ins := d.Instances()
	require.Equal(t, []int{1, 3, 4, 2}, instanceCells(ins))

	shift := ins[1].Transform().Shift
	assert.InDelta(t, 5, shift[0], 1e-12)
	assert.InDelta(t, 1, shift[1], 1e-12)
	assert.InDelta(t, 0, shift[2], 1e-12)

	path, _ := d.CellAt(xform.Vec3{5, 1.5, 0})
	assert.Equal(t, []int{1, 3}, pathCells(path))
}

func TestLattice_Hexahedral(t *testing.T) {
	d := build(t, latticeDeck)

	lat, _ := d.Cell(3)
	assert.Equal(t, LatticeHexahedral, lat.Lat())

	l := lat.Fill()
	require.NotNil(t, l)
	assert.Equal(t, LatticeHexahedral, l.Kind())
	assert.Equal(t, [3]Range{{0, 1}, {0, 0}, {0, 0}}, l.Ranges())
	assert.Equal(t, []int{2, 3}, l.Universes())
	assert.False(t, l.Unbounded())

	b := l.Basis()
	assert.Equal(t, xform.Vec3{2, 0, 0}, b[0])
	assert.Equal(t, xform.Vec3{0, 2, 0}, b[1])
	assert.Equal(t, xform.Vec3{}, b[2])

	e, ok := l.Element([3]int{1, 0, 0})
	require.True(t, ok)
	assert.Equal(t, 3, e.Universe)

	_, ok = l.Element([3]int{2, 0, 0})
	assert.False(t, ok)

	ins := d.Instances()
	assert.Equal(t, []int{1, 3, 4, 5, 3, 6, 7, 2}, instanceCells(ins))
	assert.True(t, ins[4].InLattice())
	assert.Equal(t, [3]int{1, 0, 0}, ins[4].Index())
	assert.Equal(t, xform.Vec3{2, 0, 0}, ins[5].Transform().Shift)

	path, ok := d.CellAt(xform.Vec3{2.1, 0, 0})
	require.True(t, ok)
	assert.Equal(t, []int{1, 3, 6}, pathCells(path))
	assert.Equal(t, [3]int{1, 0, 0}, path[1].Index())

	path, _ = d.CellAt(xform.Vec3{0, 0.7, 0})
	assert.Equal(t, []int{1, 3, 5}, pathCells(path))
}

func TestLattice_Hexagonal(t *testing.T) {
	d := build(t, `hexagonal lattice
1 0 -10 fill=1
2 0 10
3 0 -1 2 -3 4 -5 6 -7 8 u=1 lat=2 fill=0:1 0:1 0:0 2 2 2 3
4 0 -9 u=2
5 0 9 u=2
6 0 -9 u=3
7 0 9 u=3

10 so 100
1 px 1
2 px -1
3 p 0.5 0.8660254037844386 0 1
4 p 0.5 0.8660254037844386 0 -1
5 p -0.5 0.8660254037844386 0 1
6 p -0.5 0.8660254037844386 0 -1
7 pz 1
8 pz -1
9 so 0.5
`)

	lat, _ := d.Cell(3)
	assert.Equal(t, LatticeHexagonal, lat.Lat())

	l := lat.Fill()
	assert.Equal(t, LatticeHexagonal, l.Kind())
	require.Equal(t, 4, l.Len())

	b := l.Basis()
	assert.InDelta(t, 2, b[0][0], 1e-9)
	assert.InDelta(t, 0, b[0][1], 1e-9)
	assert.InDelta(t, 1, b[1][0], 1e-9)
	assert.InDelta(t, math.Sqrt(3), b[1][1], 1e-9)
	assert.InDelta(t, 0, b[1][2], 1e-9)
	assert.Equal(t, xform.Vec3{0, 0, 2}, b[2])

	ins := d.Instances()
	assert.Equal(t, []int{1, 3, 4, 5, 3, 4, 5, 3, 4, 5, 3, 6, 7, 2}, instanceCells(ins))

	corner := ins[10]
	assert.Equal(t, [3]int{1, 1, 0}, corner.Index())
	shift := corner.Transform().Shift
	assert.InDelta(t, 3, shift[0], 1e-9)
	assert.InDelta(t, math.Sqrt(3), shift[1], 1e-9)
	assert.InDelta(t, 0, shift[2], 1e-9)

	inner := ins[11].Transform().Shift
	assert.InDelta(t, 3, inner[0], 1e-9)
	assert.InDelta(t, math.Sqrt(3), inner[1], 1e-9)

	path, ok := d.CellAt(xform.Vec3{3, math.Sqrt(3), 0})
	require.True(t, ok)
	assert.Equal(t, []int{1, 3, 6}, pathCells(path))
	assert.Equal(t, [3]int{1, 1, 0}, path[1].Index())

	path, _ = d.CellAt(xform.Vec3{1, math.Sqrt(3), 0.6})
	assert.Equal(t, []int{1, 3, 5}, pathCells(path))
	assert.Equal(t, [3]int{0, 1, 0}, path[1].Index())
}

func TestLattice_ComplementFollowsElement(t *testing.T) {
	d := build(t, `lattice complement
1 0 -10 fill=1
2 0 10
3 0 -1 2 -3 4 #8 u=1 lat=1 fill=0:1 0:0 0:0 2 2
8 0 -6 u=1
4 0 -5 u=2
5 0 5 u=2

10 so 100
1 px 1
2 px -1
3 py 1
4 py -1
5 so 0.5
6 so 0.3
`)

	path, ok := d.CellAt(xform.Vec3{2, 0, 0})
	require.True(t, ok)
	assert.Equal(t, []int{1}, pathCells(path))

	path, _ = d.CellAt(xform.Vec3{2.6, 0, 0})
	assert.Equal(t, []int{1, 3, 5}, pathCells(path))
	assert.Equal(t, [3]int{1, 0, 0}, path[1].Index())

	path, _ = d.CellAt(xform.Vec3{0, 0, 0})
	assert.Equal(t, []int{1, 8}, pathCells(path))
}

func TestLattice_Errors(t *testing.T) {
	tests := []struct {
		name string
		fill string
		want error
	}{
		{"count", "lat=1 fill=0:1 0:0 0:0 2", ErrInvalidCard},
		{"range", "lat=1 fill=1:0 0:0 0:0 2", ErrInvalidCard},
		{"ranges without lat", "fill=0:1 0:0 0:0 2 2", ErrInvalidCard},
		{"missing universe", "lat=1 fill=0:1 0:0 0:0 2 9", ErrUnresolvedReference},
		{"missing planes", "lat=1 fill=0:1 0:1 0:1 2 7r", ErrInvalidCard},
		{"missing transform", "lat=1 fill=0:1 0:0 0:0 2 (4) 2", ErrUnresolvedReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "t\n1 0 -10 fill=1\n2 0 10\n3 0 -1 2 -3 4 u=1 " + tt.fill +
				"\n4 0 -5 u=2\n5 0 5 u=2\n\n10 so 100\n1 px 1\n2 px -1\n3 py 1\n4 py -1\n5 so 0.5\n"

			err := buildErr(t, src)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLattice_RepeatAndSelfFill(t *testing.T) {
	d := build(t, `repeat
1 0 -10 fill=1
2 0 10
3 0 -1 2 -3 4 u=1 lat=1 fill=-1:1 0:0 0:0 1 2 1r
4 0 -5 u=2
5 0 5 u=2

10 so 100
1 px 1
2 px -1
3 py 1
4 py -1
5 so 0.5
`)

	lat, _ := d.Cell(3)
	l := lat.Fill()
	require.Equal(t, 3, l.Len())
	elems := l.Elements()
	assert.Equal(t, []int{1, 2, 2}, []int{elems[0].Universe, elems[1].Universe, elems[2].Universe})
	assert.Equal(t, [3]int{-1, 0, 0}, l.Index(0))

	ins := d.Instances()
	assert.Equal(t, []int{1, 3, 3, 4, 5, 3, 4, 5, 2}, instanceCells(ins))
	assert.Empty(t, ins[1].Children())

	diags := d.Diagnostics()
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, CodeSelfFill, diags.Infos[0].Code)
}

func TestLattice_Unbounded(t *testing.T) {
	d := build(t, `unbounded
1 0 -10 fill=1
2 0 10
3 0 -1 2 -3 4 u=1 lat=1 fill=2
4 0 -5 u=2
5 0 5 u=2

10 so 100
1 px 1
2 px -1
3 py 1
4 py -1
5 so 0.5
`)

	lat, _ := d.Cell(3)
	assert.True(t, lat.Fill().Unbounded())
	assert.Equal(t, []int{1, 3, 4, 5, 2}, instanceCells(d.Instances()))

	diags := d.Diagnostics()
	require.Len(t, diags.Infos, 1)
	assert.Equal(t, CodeUnboundedLattice, diags.Infos[0].Code)
}

func TestFill_Cycle(t *testing.T) {
	err := buildErr(t, `cycle
1 0 -1 fill=1
2 0 1
3 0 -2 u=1 fill=2
4 0 2 u=1
5 0 -2 u=2 fill=1
6 0 2 u=2

1 so 10
2 so 1
`)
	require.ErrorIs(t, err, ErrCircularReference)
	assert.Contains(t, err.Error(), "fills among universes 1, 2")
	assert.NotContains(t, err.Error(), "universes 0")

	var ce *CardError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CardCell, ce.Kind)
	assert.Equal(t, 3, ce.ID)
	assert.Equal(t, 4, ce.Line)
}

func TestFill_SelfCycle(t *testing.T) {
	err := buildErr(t, `self
1 0 -1 fill=1
2 0 1
3 0 -2 u=1 fill=1
4 0 2 u=1

1 so 10
2 so 1
`)
	require.ErrorIs(t, err, ErrCircularReference)

	var ce *CardError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 3, ce.ID)
}

func TestFill_Depth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxFillDepth = 1

	d, err := Parse(strings.NewReader(`deep
1 0 -1 fill=1
2 0 1
3 0 -2 u=1 fill=2
4 0 2 u=1
5 0 -3 u=2 fill=3
6 0 3 u=2
7 0 -4 u=3

1 so 10
2 so 5
3 so 2
4 so 1
`), opts)
	require.NoError(t, err)
	assert.ErrorIs(t, d.CreateGeometry(), ErrFillDepth)
}

func TestFill_TransformRefsAreBound(t *testing.T) {
	d := build(t, fillDeck)

	host, _ := d.Cell(1)
	ref, ok := host.Fill().Elements()[0].Transform.(*dataref.Lookup[xform.Transform])
	require.True(t, ok)
	assert.True(t, ref.Bound())
}
