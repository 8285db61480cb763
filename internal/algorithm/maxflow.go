package algorithm

import (
	"fmt"

	"github.com/dreamware/graphpipe/internal/graph"
)

// residualEdge is one arc of the residual network. rev indexes the paired arc
// in arcs[to].
type residualEdge struct {
	to  int
	cap int
	rev int
}

// MaxFlowUnit computes the maximum flow from vertex 0 to vertex V-1 with
// Edmonds-Karp. Every adjacency entry u->v contributes one unit of capacity,
// so an undirected edge carries one unit in each direction and parallel edges
// add up.
func MaxFlowUnit(g *graph.Graph) string {
	n := g.V()
	if n == 0 {
		return "Max flow: 0 (empty graph)"
	}
	sink := n - 1
	return fmt.Sprintf("Max flow (0->%d, unit capacities): %d", sink, edmondsKarp(g, 0, sink))
}

func edmondsKarp(g *graph.Graph, source, sink int) int {
	n := g.V()
	if source == sink {
		return 0
	}

	arcs := make([][]residualEdge, n)
	for u := 0; u < n; u++ {
		for _, v := range g.Neighbors(u) {
			arcs[u] = append(arcs[u], residualEdge{to: v, cap: 1, rev: len(arcs[v])})
			arcs[v] = append(arcs[v], residualEdge{to: u, cap: 0, rev: len(arcs[u]) - 1})
		}
	}

	type step struct{ from, arc int }
	parent := make([]step, n)
	flow := 0
	for {
		for i := range parent {
			parent[i] = step{from: -1}
		}
		parent[source] = step{from: source}
		queue := []int{source}
		for len(queue) > 0 && parent[sink].from == -1 {
			u := queue[0]
			queue = queue[1:]
			for i, e := range arcs[u] {
				if e.cap > 0 && parent[e.to].from == -1 {
					parent[e.to] = step{from: u, arc: i}
					queue = append(queue, e.to)
				}
			}
		}
		if parent[sink].from == -1 {
			return flow
		}

		// Bottleneck along the path; unit arcs make it 1 but parallel
		// residual capacity can exceed that after cancellations.
		bottleneck := -1
		for v := sink; v != source; {
			p := parent[v]
			c := arcs[p.from][p.arc].cap
			if bottleneck == -1 || c < bottleneck {
				bottleneck = c
			}
			v = p.from
		}
		for v := sink; v != source; {
			p := parent[v]
			e := &arcs[p.from][p.arc]
			e.cap -= bottleneck
			arcs[v][e.rev].cap += bottleneck
			v = p.from
		}
		flow += bottleneck
	}
}
