package algorithm

import (
	"strconv"
	"strings"

	"github.com/dreamware/graphpipe/internal/graph"
)

// StronglyConnected lists the strongly connected components using Kosaraju's
// two-pass DFS. Components are numbered in discovery order of the second pass
// and list their vertices in visit order.
func StronglyConnected(g *graph.Graph) string {
	n := g.V()
	if n == 0 {
		return "SCC count: 0 (empty graph)"
	}

	// First pass: finish order on the original adjacency.
	seen := make([]bool, n)
	order := make([]int, 0, n)
	var visit func(u int)
	visit = func(u int) {
		seen[u] = true
		for _, v := range g.Neighbors(u) {
			if !seen[v] {
				visit(v)
			}
		}
		order = append(order, u)
	}
	for u := 0; u < n; u++ {
		if !seen[u] {
			visit(u)
		}
	}

	radj := make([][]int, n)
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(u) {
			radj[v] = append(radj[v], u)
		}
	}

	// Second pass: reverse finish order on the reversed adjacency.
	for i := range seen {
		seen[i] = false
	}
	var components [][]int
	var collect func(u int, comp []int) []int
	collect = func(u int, comp []int) []int {
		seen[u] = true
		comp = append(comp, u)
		for _, v := range radj[u] {
			if !seen[v] {
				comp = collect(v, comp)
			}
		}
		return comp
	}
	for i := n - 1; i >= 0; i-- {
		if u := order[i]; !seen[u] {
			components = append(components, collect(u, nil))
		}
	}

	var b strings.Builder
	b.WriteString("SCC count: ")
	b.WriteString(strconv.Itoa(len(components)))
	for i, comp := range components {
		b.WriteString("\nSCC ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(":")
		for _, v := range comp {
			b.WriteByte(' ')
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}
