package main

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/graphpipe/internal/client"
	"github.com/dreamware/graphpipe/internal/logging"
	"github.com/dreamware/graphpipe/internal/pipeline"
	"github.com/dreamware/graphpipe/internal/status"
	"github.com/dreamware/graphpipe/internal/wire"
)

func startServer(t *testing.T) string {
	t.Helper()
	p := pipeline.New(pipeline.Config{Limits: wire.DefaultLimits()}, logging.Discard())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go p.Serve(ln)
	t.Cleanup(func() {
		p.Shutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Wait(ctx)
	})
	return ln.Addr().String()
}

// TestRepl runs a scripted session against a live server.
func TestRepl(t *testing.T) {
	addr := startServer(t)
	c, err := client.Dial(context.Background(), addr)
	require.NoError(t, err)

	in := strings.NewReader(strings.Join([]string{
		"mst 4 0-1 1-2 2-3",
		"",
		"mst four",
		"foo 2",
		"all 3 0-1 1-2 2-0",
		"quit",
		"scc 1",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, repl(context.Background(), c, in, &out, 5*time.Second, false))

	text := out.String()
	assert.Contains(t, text, "MST weight (unit): 3\n")
	assert.Contains(t, text, "invalid command: mst: bad vertex count")
	assert.Contains(t, text, `Error: unknown operation "foo"`)
	assert.Contains(t, text, "MST weight (unit): 2")
	assert.Contains(t, text, "Hamiltonian circuit: 0 -> 1 -> 2 -> 0")
	assert.NotContains(t, text, "SCC count: 1\nSCC 0: 0\n", "commands after quit are ignored")
}

// TestReplPrompt verifies usage and prompts are shown interactively.
func TestReplPrompt(t *testing.T) {
	addr := startServer(t)
	c, err := client.Dial(context.Background(), addr)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, repl(context.Background(), c, strings.NewReader(""), &out, time.Second, true))
	assert.True(t, strings.HasPrefix(out.String(), "Commands:"))
	assert.Contains(t, out.String(), "> ")
}

// TestPrintStats verifies the status output is indented JSON.
func TestPrintStats(t *testing.T) {
	p := pipeline.New(pipeline.Config{}, logging.Discard())
	defer p.Shutdown()
	ts := httptest.NewServer(status.Handler(p))
	defer ts.Close()

	var out bytes.Buffer
	require.NoError(t, printStats(context.Background(), &out, ts.URL+"/"))
	assert.Contains(t, out.String(), `"state": "running"`)

	bad := httptest.NewServer(http.NotFoundHandler())
	defer bad.Close()
	assert.Error(t, printStats(context.Background(), &out, bad.URL))
}

func TestGetenv(t *testing.T) {
	t.Setenv("GRAPHCTL_TEST_ADDR", "10.0.0.1:1")
	assert.Equal(t, "10.0.0.1:1", getenv("GRAPHCTL_TEST_ADDR", "x"))
	assert.Equal(t, "x", getenv("GRAPHCTL_TEST_UNSET", "x"))
}
