package deck

import (
	"slices"
)

// refGraph holds references between cards or universes. Nodes are
// positions in declaration order; g[i] lists the nodes i refers to.
type refGraph [][]int

func newRefGraph(n int) refGraph { return make(refGraph, n) }

// link records that from refers to to. Repeated links are kept once.
func (g refGraph) link(from, to int) {
	if !slices.Contains(g[from], to) {
		g[from] = append(g[from], to)
	}
}

// cycle returns the members of a reference cycle in ascending order, or
// nil when the graph is acyclic. Nodes that only reach a cycle are not
// members. When there are several cycles, the one holding the lowest node
// is reported.
func (g refGraph) cycle() []int {
	var (
		next    int
		index   = make([]int, len(g))
		low     = make([]int, len(g))
		onStack = make([]bool, len(g))
		stack   []int
		best    []int
	)

	for i := range index {
		index[i] = -1
	}

	var visit func(v int)
	visit = func(v int) {
		index[v], low[v] = next, next
		next++

		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g[v] {
			switch {
			case index[w] < 0:
				visit(w)
				low[v] = min(low[v], low[w])
			case onStack[w]:
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] != index[v] {
			return
		}

		var comp []int

		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false

			comp = append(comp, w)
			if w == v {
				break
			}
		}

		if len(comp) == 1 && !slices.Contains(g[v], v) {
			return
		}

		slices.Sort(comp)

		if best == nil || comp[0] < best[0] {
			best = comp
		}
	}

	for v := range g {
		if index[v] < 0 {
			visit(v)
		}
	}

	return best
}
