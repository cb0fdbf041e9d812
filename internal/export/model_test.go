package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcnp-csg/internal/deck"
)

const testDeck = `export test
1 0 -10 fill=1 (2)
2 0 10
3 1 -1.5 -1 2 -3 4 u=1 lat=1 fill=0:1 0:0 0:0 2 2
4 0 #3 u=1
5 0 -5 u=2 imp:n=1
6 0 5 u=2

10 so 100
*1 px 1
2 px -1
3 py 1
4 py -1
5 so 0.5
7 so 1

tr2 0 0 1
m1 1001 1
`

func buildDeck(t *testing.T) *deck.Deck {
	t.Helper()

	d, err := deck.Build(strings.NewReader(testDeck), deck.DefaultOptions())
	require.NoError(t, err)

	return d
}

func TestFromDeck(t *testing.T) {
	m, err := FromDeck(buildDeck(t), Options{IncludeTree: true, IncludeInstances: true})
	require.NoError(t, err)

	assert.Equal(t, "export test", m.Title)
	require.Len(t, m.Surfaces, 7)
	assert.Equal(t, Surface{ID: 1, Mnemonic: "px", Kind: "plane", Coefficients: []float64{1}, Boundary: "reflecting"}, m.Surfaces[1])

	require.Len(t, m.Transforms, 1)
	assert.Equal(t, 2, m.Transforms[0].ID)
	assert.Len(t, m.Transforms[0].Entries, 12)

	require.Len(t, m.Cells, 6)

	lat := m.Cells[2]
	assert.Equal(t, "-1 2 -3 4", lat.Expression)
	require.NotNil(t, lat.Density)
	assert.InDelta(t, -1.5, *lat.Density, 1e-12)
	require.NotNil(t, lat.Fill)
	assert.Equal(t, "hexahedral", lat.Fill.Lattice)
	assert.Equal(t, [][2]int{{0, 1}, {0, 0}, {0, 0}}, lat.Fill.Ranges)
	assert.Equal(t, []int{2}, lat.Fill.Universes)
	assert.Equal(t, [3]float64{2, 0, 0}, lat.Fill.Pitch[0])

	require.NotNil(t, lat.Tree, spew.Sdump(lat))
	assert.Equal(t, "intersect", lat.Tree.Op)

	comp := m.Cells[3].Tree
	require.NotNil(t, comp)
	assert.Equal(t, "complement", comp.Op)
	assert.Equal(t, "cell", comp.Children[0].Op)
	assert.Equal(t, 3, comp.Children[0].Cell)

	assert.Equal(t, []string{"u=2", "imp:n=1"}, m.Cells[4].Params)
	assert.Nil(t, m.Cells[4].Density)

	host := m.Cells[0]
	require.NotNil(t, host.Fill)
	assert.Empty(t, host.Fill.Lattice)
	assert.Equal(t, []int{1}, host.Fill.Universes)

	// 1, lattice (2 elements x 2 cells each), 4, 2
	require.Len(t, m.Instances, 9, spew.Sdump(m.Instances))
	assert.Equal(t, []int{1, 3}, m.Instances[1].Path)
	assert.Equal(t, []int{0, 0, 0}, m.Instances[1].Index)
	assert.Equal(t, []int{1, 3, 5}, m.Instances[2].Path)

	require.Len(t, m.Diagnostics, 1)
	assert.Equal(t, deck.CodeUnusedSurface, m.Diagnostics[0].Code)
}

func TestFromDeck_Optional(t *testing.T) {
	m, err := FromDeck(buildDeck(t), Options{})
	require.NoError(t, err)

	assert.Empty(t, m.Instances)

	for _, c := range m.Cells {
		assert.Nil(t, c.Tree)
	}
}

func TestFromDeck_NotResolved(t *testing.T) {
	d, err := deck.Parse(strings.NewReader(testDeck), deck.DefaultOptions())
	require.NoError(t, err)

	_, err = FromDeck(d, Options{})
	assert.ErrorIs(t, err, ErrNotResolved)
}

func TestMarshal(t *testing.T) {
	m, err := FromDeck(buildDeck(t), Options{IncludeInstances: true})
	require.NoError(t, err)

	data, err := Marshal(m)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "title: export test")
	assert.Contains(t, text, "mnemonic: px")
	assert.Contains(t, text, "severity: warning")

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestWriteFile(t *testing.T) {
	m, err := FromDeck(buildDeck(t), Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, WriteFile(m, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, m.Cells, back.Cells)
}
