package algorithm

import (
	"strconv"
	"strings"

	"github.com/dreamware/graphpipe/internal/graph"
)

// HamiltonCircuit searches for a Hamiltonian circuit by backtracking with
// vertex 0 fixed as the start, trying candidates in ascending order. The first
// circuit found is reported. Worst case is exponential in V.
func HamiltonCircuit(g *graph.Graph) string {
	n := g.V()
	switch n {
	case 0:
		return "No Hamiltonian circuit (empty graph)"
	case 1:
		return "Hamiltonian circuit: 0 -> 0"
	}

	for u := 0; u < n; u++ {
		if g.Degree(u) < 1 {
			return "No Hamiltonian circuit"
		}
	}

	adj := make([]bool, n*n)
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(u) {
			adj[u*n+v] = true
		}
	}

	path := make([]int, n)
	used := make([]bool, n)
	used[0] = true

	var place func(pos int) bool
	place = func(pos int) bool {
		if pos == n {
			return adj[path[n-1]*n+path[0]]
		}
		prev := path[pos-1]
		for v := 1; v < n; v++ {
			if used[v] || !adj[prev*n+v] {
				continue
			}
			used[v] = true
			path[pos] = v
			if place(pos + 1) {
				return true
			}
			used[v] = false
		}
		return false
	}

	if !place(1) {
		return "No Hamiltonian circuit"
	}

	var b strings.Builder
	b.WriteString("Hamiltonian circuit: ")
	for _, v := range path {
		b.WriteString(strconv.Itoa(v))
		b.WriteString(" -> ")
	}
	b.WriteString("0")
	return b.String()
}
