// Package graph provides the small undirected graph type that travels through
// the request pipeline.
//
// A Graph is built from a vertex count and an edge list decoded off the wire.
// Every edge u-v is stored in both adjacency lists, matching how requests are
// interpreted by every operation. Endpoints are validated on insertion so a
// malformed request is rejected before any Task is created.
//
// # Ownership
//
// A Graph is never shared between goroutines. The connection handler builds
// one per request and hands each Task its own copy (see Clone), so algorithm
// code can read it without locks.
//
// # Example
//
//	g := graph.New(3)
//	if err := g.AddEdge(0, 1); err != nil {
//	    return err
//	}
//	cp := g.Clone()
package graph
