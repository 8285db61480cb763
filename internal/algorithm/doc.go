// Package algorithm holds the fixed set of graph operations the pipeline can
// run and the registry that maps an operation to its implementation.
//
// # Operations
//
// Five operations are known, each addressed on the wire by an exact,
// case-sensitive name:
//
//	euler     Euler path / circuit check
//	mst       spanning-tree feasibility and unit weight
//	scc       strongly connected components (Kosaraju)
//	maxflow   max flow from vertex 0 to vertex V-1, unit capacities
//	hamilton  Hamiltonian circuit search (backtracking)
//
// Names are turned into an Operation by Parse at the connection boundary;
// anything else is ErrUnknownOperation. Resolve is a total mapping from
// Operation to Func, so a worker never sees an unknown name.
//
// The "all" request fans out to FanOut(), which deliberately leaves euler out.
//
// # Contract
//
// Every Func is deterministic, never mutates its input and returns the whole
// result as text. Results carry no trailing newline; multi-line results use
// "\n" between lines.
//
// hamilton is exponential in the worst case and cannot be interrupted. It only
// ever blocks its own worker.
package algorithm
