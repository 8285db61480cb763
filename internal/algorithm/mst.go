package algorithm

import (
	"fmt"

	"github.com/dreamware/graphpipe/internal/graph"
)

// SpanningTree reports whether a spanning tree exists and its weight under
// unit edge weights, which is always V-1 for a connected graph.
func SpanningTree(g *graph.Graph) string {
	n := g.V()
	if n == 0 {
		return "MST weight (unit): 0 (empty graph)"
	}
	if !connected(g) {
		return "MST does not exist: graph is disconnected (spanning tree requires one connected component)."
	}
	return fmt.Sprintf("MST weight (unit): %d", n-1)
}

// connected reports whether every vertex is reachable from vertex 0.
func connected(g *graph.Graph) bool {
	n := g.V()
	if n <= 1 {
		return true
	}
	seen := make([]bool, n)
	seen[0] = true
	stack := []int{0}
	visited := 1
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, v := range g.Neighbors(u) {
			if !seen[v] {
				seen[v] = true
				visited++
				stack = append(stack, v)
			}
		}
	}
	return visited == n
}
