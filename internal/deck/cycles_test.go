package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefGraph_Acyclic(t *testing.T) {
	g := newRefGraph(3)
	g.link(1, 0)
	g.link(2, 1)
	g.link(2, 1)

	assert.Equal(t, []int{0}, g[1])
	assert.Equal(t, []int{1}, g[2])
	assert.Nil(t, g.cycle())
}

func TestRefGraph_CycleExcludesDependents(t *testing.T) {
	g := newRefGraph(4)
	g.link(1, 2)
	g.link(2, 1)
	g.link(3, 2)
	g.link(0, 3)

	assert.Equal(t, []int{1, 2}, g.cycle())
}

func TestRefGraph_SelfReference(t *testing.T) {
	g := newRefGraph(2)
	g.link(1, 1)

	assert.Equal(t, []int{1}, g.cycle())
}

func TestRefGraph_LowestCycleWins(t *testing.T) {
	g := newRefGraph(5)
	g.link(3, 4)
	g.link(4, 3)
	g.link(0, 2)
	g.link(2, 0)

	assert.Equal(t, []int{0, 2}, g.cycle())
}
