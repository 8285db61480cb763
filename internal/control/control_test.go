package control

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/graphpipe/internal/logging"
)

type countingShutdowner struct {
	calls atomic.Int32
}

func (c *countingShutdowner) Shutdown() { c.calls.Add(1) }

// TestWatcherCommand verifies the command triggers exactly one shutdown and
// unknown lines are ignored.
func TestWatcherCommand(t *testing.T) {
	var out bytes.Buffer
	logger, err := logging.New("warn", &out)
	require.NoError(t, err)

	target := &countingShutdowner{}
	in := strings.NewReader("status\n\n  exit  \nexit\n")
	w := NewWatcher(in, "exit", target, logger)

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, int32(1), target.calls.Load())
	assert.Contains(t, out.String(), `Unknown command "status"`)
}

// TestWatcherEOF verifies end of input does not shut anything down.
func TestWatcherEOF(t *testing.T) {
	target := &countingShutdowner{}
	w := NewWatcher(strings.NewReader("hello\n"), "exit", target, logging.Discard())

	require.NoError(t, w.Run(context.Background()))
	assert.Zero(t, target.calls.Load())
}

// TestWatcherContext verifies Run returns when ctx is canceled while the
// input is still open.
func TestWatcherContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	target := &countingShutdowner{}
	w := NewWatcher(pr, "exit", target, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, target.calls.Load())
}

// TestWatcherReadError verifies input failures are reported.
func TestWatcherReadError(t *testing.T) {
	pr, pw := io.Pipe()
	pw.CloseWithError(errors.New("boom"))

	w := NewWatcher(pr, "exit", &countingShutdowner{}, logging.Discard())
	err := w.Run(context.Background())
	assert.ErrorContains(t, err, "boom")
}
