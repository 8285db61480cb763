package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrVertexOutOfRange is returned when an edge endpoint is outside [0, V).
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrSelfLoop is returned when both endpoints of an edge are the same vertex.
	ErrSelfLoop = errors.New("self loops are not supported")

	// ErrNegativeVertexCount is returned by FromEdges for a negative vertex count.
	ErrNegativeVertexCount = errors.New("vertex count must be non-negative")
)

// Edge is an unordered pair of vertex indices as it appears on the wire.
type Edge struct {
	U int
	V int
}

// Graph is an undirected multigraph over vertices 0..V-1 stored as adjacency
// lists. Parallel edges are kept; they count towards degree and capacity.
type Graph struct {
	adj [][]int
	n   int
}

// New creates a graph with n isolated vertices. n must not be negative.
func New(n int) *Graph {
	return &Graph{
		n:   n,
		adj: make([][]int, n),
	}
}

// FromEdges builds a graph with n vertices and the given edges, stopping at
// the first invalid edge.
func FromEdges(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, ErrNegativeVertexCount
	}
	g := New(n)
	for i, e := range edges {
		if err := g.AddEdge(e.U, e.V); err != nil {
			return nil, fmt.Errorf("edge %d (%d,%d): %w", i, e.U, e.V, err)
		}
	}
	return g, nil
}

// V returns the number of vertices.
func (g *Graph) V() int {
	return g.n
}

// AddEdge adds the undirected edge u-v.
func (g *Graph) AddEdge(u, v int) error {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return ErrVertexOutOfRange
	}
	if u == v {
		return ErrSelfLoop
	}
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	return nil
}

// Neighbors returns the adjacency list of u in insertion order. The slice is
// owned by the graph and must not be modified.
func (g *Graph) Neighbors(u int) []int {
	return g.adj[u]
}

// Degree returns the number of edge endpoints incident to u.
func (g *Graph) Degree(u int) int {
	return len(g.adj[u])
}

// Clone returns a deep copy that shares no memory with g.
func (g *Graph) Clone() *Graph {
	cp := &Graph{
		n:   g.n,
		adj: make([][]int, g.n),
	}
	for u, nbrs := range g.adj {
		if len(nbrs) == 0 {
			continue
		}
		cp.adj[u] = append(make([]int, 0, len(nbrs)), nbrs...)
	}
	return cp
}
