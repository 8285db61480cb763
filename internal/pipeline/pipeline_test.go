package pipeline

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/graphpipe/internal/algorithm"
	"github.com/dreamware/graphpipe/internal/client"
	"github.com/dreamware/graphpipe/internal/graph"
	"github.com/dreamware/graphpipe/internal/logging"
	"github.com/dreamware/graphpipe/internal/wire"
)

// startPipeline runs a pipeline on a loopback listener and shuts it down
// when the test ends.
func startPipeline(t *testing.T) (*Pipeline, string) {
	t.Helper()

	p := New(Config{Limits: wire.DefaultLimits(), WriteTimeout: 2 * time.Second}, logging.Discard())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() { errc <- p.Serve(ln) }()

	t.Cleanup(func() {
		p.Shutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, p.Wait(ctx))
		assert.NoError(t, <-errc)
	})
	return p, ln.Addr().String()
}

func dial(t *testing.T, addr string) *client.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c, err := client.Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func do(t *testing.T, c *client.Client, op string, v int, edges []graph.Edge) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := c.Do(ctx, op, v, edges)
	require.NoError(t, err)
	return out
}

var (
	chain    = []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}}
	triangle = []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}}
)

// TestSingleOperations sends one request per operation and checks the text.
func TestSingleOperations(t *testing.T) {
	_, addr := startPipeline(t)
	c := dial(t, addr)

	tests := []struct {
		name     string
		op       string
		vertices int
		edges    []graph.Edge
		expected string
	}{
		{"mst chain", "mst", 4, chain, "MST weight (unit): 3"},
		{"scc triangle", "scc", 3, triangle, "SCC count: 1\nSCC 0: 0 1 2"},
		{"mst disconnected", "mst", 3, []graph.Edge{{U: 0, V: 1}},
			"MST does not exist: graph is disconnected (spanning tree requires one connected component)."},
		{"mst single vertex", "mst", 1, nil, "MST weight (unit): 0"},
		{"hamilton single vertex", "hamilton", 1, nil, "Hamiltonian circuit: 0 -> 0"},
		{"euler empty", "euler", 0, nil, "Eulerian Circuit (empty graph)"},
		{"mst empty", "mst", 0, nil, "MST weight (unit): 0 (empty graph)"},
		{"scc empty", "scc", 0, nil, "SCC count: 0 (empty graph)"},
		{"maxflow empty", "maxflow", 0, nil, "Max flow: 0 (empty graph)"},
		{"hamilton empty", "hamilton", 0, nil, "No Hamiltonian circuit (empty graph)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := do(t, c, tt.op, tt.vertices, tt.edges)
			require.Len(t, out, 1)
			assert.Equal(t, tt.expected, out[0])
		})
	}
}

// TestSingleVertexSCC checks the component count line for V=1.
func TestSingleVertexSCC(t *testing.T) {
	_, addr := startPipeline(t)
	out := do(t, dial(t, addr), "scc", 1, nil)
	assert.Contains(t, out[0], "SCC count: 1")
}

// TestAllFanOut verifies "all" yields one frame per fan-out operation.
func TestAllFanOut(t *testing.T) {
	_, addr := startPipeline(t)
	c := dial(t, addr)

	g, err := graph.FromEdges(4, chain)
	require.NoError(t, err)
	var expected []string
	for _, op := range algorithm.FanOut() {
		expected = append(expected, algorithm.Resolve(op)(g))
	}

	out := do(t, c, wire.OpAll, 4, chain)
	assert.ElementsMatch(t, expected, out)
}

// TestIdenticalRequests verifies results are deterministic per connection.
func TestIdenticalRequests(t *testing.T) {
	_, addr := startPipeline(t)
	c := dial(t, addr)

	first := do(t, c, "maxflow", 4, chain)
	second := do(t, c, "maxflow", 4, chain)
	assert.Equal(t, first, second)
}

// TestUnknownOperation verifies the error frame and that the connection
// stays usable afterwards.
func TestUnknownOperation(t *testing.T) {
	_, addr := startPipeline(t)
	c := dial(t, addr)

	out := do(t, c, "foo", 3, triangle)
	assert.Equal(t, []string{`Error: unknown operation "foo"`}, out)

	out = do(t, c, "mst", 4, chain)
	assert.Equal(t, []string{"MST weight (unit): 3"}, out)
}

// TestBadRequests verifies invalid graphs produce one error frame each.
func TestBadRequests(t *testing.T) {
	_, addr := startPipeline(t)
	c := dial(t, addr)

	tests := []struct {
		name     string
		op       string
		vertices int
		edges    []graph.Edge
	}{
		{"negative vertex count", "mst", -1, nil},
		{"too many vertices", "mst", wire.DefaultLimits().MaxVertices + 1, nil},
		{"endpoint out of range", "scc", 2, []graph.Edge{{U: 0, V: 5}}},
		{"self loop", "euler", 2, []graph.Edge{{U: 1, V: 1}}},
		{"bad graph with all", wire.OpAll, 2, []graph.Edge{{U: 0, V: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A rejected request yields one frame, even for "all".
			require.NoError(t, c.Send(tt.op, tt.vertices, tt.edges))
			res, err := c.Recv()
			require.NoError(t, err)
			assert.Contains(t, res, "Error: bad request")
		})
	}

	out := do(t, c, "scc", 3, triangle)
	assert.Equal(t, "SCC count: 1\nSCC 0: 0 1 2", out[0])
}

// TestFramingErrorClosesConnection verifies an untrustworthy frame closes
// the connection without a reply.
func TestFramingErrorClosesConnection(t *testing.T) {
	_, addr := startPipeline(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	var buf []byte
	buf = binary.BigEndian.AppendUint32(buf, 1)
	buf = binary.BigEndian.AppendUint32(buf, 0)
	buf = binary.BigEndian.AppendUint32(buf, uint32(0xFFFFFFFF)) // name length -1
	_, err = conn.Write(buf)
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err = wire.ReadResult(conn, 0)
	assert.ErrorIs(t, err, wire.ErrConnectionClosed)
}

// TestQuit verifies quit closes the connection and unregisters it.
func TestQuit(t *testing.T) {
	p, addr := startPipeline(t)

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return p.Stats().Connections == 1 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, wire.WriteRequest(conn, &wire.Request{Operation: wire.OpQuit}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err = wire.ReadResult(conn, 0)
	assert.ErrorIs(t, err, wire.ErrConnectionClosed)

	assert.Eventually(t, func() bool { return p.Stats().Connections == 0 },
		2*time.Second, 10*time.Millisecond)
}

// TestConcurrentClients runs N clients sending "all" at once; each must get
// exactly four frames on its own connection.
func TestConcurrentClients(t *testing.T) {
	p, addr := startPipeline(t)
	const n = 8

	var wg sync.WaitGroup
	results := make([][]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		c := dial(t, addr)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			// Each client uses a distinct chain length so misdelivery shows.
			v := i + 2
			edges := make([]graph.Edge, 0, v-1)
			for u := 0; u+1 < v; u++ {
				edges = append(edges, graph.Edge{U: u, V: u + 1})
			}
			results[i], errs[i] = c.Do(ctx, wire.OpAll, v, edges)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i], "client %d", i)
		assert.Len(t, results[i], 4)
		assert.Contains(t, results[i], fmt.Sprintf("MST weight (unit): %d", i+1), "client %d", i)
	}

	stats := p.Stats()
	for _, op := range algorithm.FanOut() {
		assert.Equal(t, uint64(n), stats.Operations[op.String()].Processed, op.String())
	}
	assert.Equal(t, uint64(n), stats.Accepted)
}

// TestZeroLimitsUseDefaults verifies a pipeline built without limits still
// serves requests.
func TestZeroLimitsUseDefaults(t *testing.T) {
	p := New(Config{}, logging.Discard())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go p.Serve(ln)
	defer waitStopped(t, p)
	defer p.Shutdown()

	out := do(t, dial(t, ln.Addr().String()), "mst", 4, chain)
	assert.Equal(t, []string{"MST weight (unit): 3"}, out)
}

// completeBipartite returns the edges of K(a,b). For b = a+1 it has no
// Hamiltonian circuit, and the backtracking search has to exhaust every
// alternating path before saying so.
func completeBipartite(a, b int) []graph.Edge {
	edges := make([]graph.Edge, 0, a*b)
	for u := 0; u < a; u++ {
		for v := a; v < a+b; v++ {
			edges = append(edges, graph.Edge{U: u, V: v})
		}
	}
	return edges
}

// TestSlowOperationIsolated verifies a long Hamiltonian search only holds
// up its own queue: other operations keep answering while hamilton Tasks
// are still pending.
func TestSlowOperationIsolated(t *testing.T) {
	p := New(Config{}, logging.Discard())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go p.Serve(ln)
	t.Cleanup(func() {
		p.Shutdown()
		// The running search is not interruptible; allow it to finish.
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		assert.NoError(t, p.Wait(ctx))
	})
	addr := ln.Addr().String()

	slow := dial(t, addr)
	edges := completeBipartite(7, 8)
	for i := 0; i < 3; i++ {
		require.NoError(t, slow.Send("hamilton", 15, edges))
	}
	require.Eventually(t, func() bool {
		return p.Stats().Operations["hamilton"].Pending > 0
	}, 2*time.Second, 5*time.Millisecond)

	fast := dial(t, addr)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := fast.Do(ctx, "mst", 4, chain)
	require.NoError(t, err)
	assert.Equal(t, []string{"MST weight (unit): 3"}, out)

	out, err = fast.Do(ctx, "scc", 3, triangle)
	require.NoError(t, err)
	assert.Equal(t, []string{"SCC count: 1\nSCC 0: 0 1 2"}, out)

	hamilton := p.Stats().Operations["hamilton"]
	assert.Positive(t, hamilton.Pending, "hamilton Tasks should still be queued")
	assert.Zero(t, hamilton.Processed)
}

// TestStats verifies counters after a completed request.
func TestStats(t *testing.T) {
	p, addr := startPipeline(t)
	c := dial(t, addr)
	do(t, c, "euler", 3, triangle)
	do(t, c, "foo", 1, nil)

	assert.Eventually(t, func() bool { return p.Stats().Delivered == 2 },
		2*time.Second, 10*time.Millisecond)

	s := p.Stats()
	assert.Equal(t, "running", s.State)
	assert.Equal(t, uint64(1), s.Operations["euler"].Processed)
	assert.Equal(t, uint64(1), s.Rejected)
	assert.Equal(t, 1, s.Connections)
	assert.Len(t, s.Clients, 1)
	assert.Len(t, s.Operations, len(algorithm.All()))
}
