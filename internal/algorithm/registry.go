package algorithm

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/dreamware/graphpipe/internal/graph"
)

// ErrUnknownOperation is returned by Parse for a name outside the known set.
var ErrUnknownOperation = errors.New("unknown operation")

// Func computes one operation over a graph and renders the result as text.
type Func func(g *graph.Graph) string

// Operation enumerates the supported graph computations.
type Operation int

const (
	Euler Operation = iota
	MST
	SCC
	MaxFlow
	Hamiltonian
)

var names = [...]string{
	Euler:       "euler",
	MST:         "mst",
	SCC:         "scc",
	MaxFlow:     "maxflow",
	Hamiltonian: "hamilton",
}

var funcs = [...]Func{
	Euler:       EulerCheck,
	MST:         SpanningTree,
	SCC:         StronglyConnected,
	MaxFlow:     MaxFlowUnit,
	Hamiltonian: HamiltonCircuit,
}

// all lists every operation in declaration order.
var all = []Operation{Euler, MST, SCC, MaxFlow, Hamiltonian}

// fanOut lists the operations an "all" request expands into.
var fanOut = []Operation{MST, SCC, MaxFlow, Hamiltonian}

// String returns the wire name of the operation.
func (o Operation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("operation(%d)", int(o))
	}
	return names[o]
}

// Valid reports whether o is one of the declared operations.
func (o Operation) Valid() bool {
	return o >= Euler && o <= Hamiltonian
}

// Parse maps a wire name to its Operation. Matching is exact and
// case-sensitive.
//
// Example:
//
//	op, err := algorithm.Parse("scc")
//	if errors.Is(err, algorithm.ErrUnknownOperation) {
//	    // report to the client, keep the connection
//	}
func Parse(name string) (Operation, error) {
	for op, n := range names {
		if n == name {
			return Operation(op), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOperation, name)
}

// Resolve returns the implementation of op. It panics on an invalid
// Operation, which can only be produced by a programming error since Parse is
// the only way to build one from input.
func Resolve(op Operation) Func {
	if !op.Valid() {
		panic(fmt.Sprintf("algorithm: resolve of invalid %s", op))
	}
	return funcs[op]
}

// All returns every known operation.
func All() []Operation {
	return slices.Clone(all)
}

// FanOut returns the operations run for an "all" request.
func FanOut() []Operation {
	return slices.Clone(fanOut)
}

// InFanOut reports whether op is part of the "all" expansion.
func InFanOut(op Operation) bool {
	return slices.Contains(fanOut, op)
}
