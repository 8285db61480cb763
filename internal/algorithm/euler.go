package algorithm

import (
	"strconv"
	"strings"

	"github.com/dreamware/graphpipe/internal/graph"
)

// EulerCheck classifies the graph as having an Euler circuit, an Euler path or
// neither. Isolated vertices are ignored for connectivity.
func EulerCheck(g *graph.Graph) string {
	n := g.V()
	if n == 0 {
		return "Eulerian Circuit (empty graph)"
	}

	start := -1
	for u := 0; u < n; u++ {
		if g.Degree(u) > 0 {
			start = u
			break
		}
	}
	// No edges at all.
	if start == -1 {
		return "Eulerian Circuit"
	}

	seen := make([]bool, n)
	seen[start] = true
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range g.Neighbors(u) {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}
	for u := 0; u < n; u++ {
		if g.Degree(u) > 0 && !seen[u] {
			return "Not Eulerian\nGraph is not connected (ignoring isolated vertices)."
		}
	}

	var odd []string
	for u := 0; u < n; u++ {
		if g.Degree(u)%2 != 0 {
			odd = append(odd, strconv.Itoa(u))
		}
	}

	switch len(odd) {
	case 0:
		return "Eulerian Circuit"
	case 2:
		return "Eulerian Path\nVertices with odd degree: " + strings.Join(odd, " ")
	default:
		return "Not Eulerian\nVertices with odd degree: " + strings.Join(odd, " ")
	}
}
