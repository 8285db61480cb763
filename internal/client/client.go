package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/dreamware/graphpipe/internal/algorithm"
	"github.com/dreamware/graphpipe/internal/graph"
	"github.com/dreamware/graphpipe/internal/wire"
)

// MaxResultSize bounds a single result frame.
const MaxResultSize = 16 << 20

// ErrEmptyCommand is returned by ParseCommand for a blank line.
var ErrEmptyCommand = errors.New("empty command")

// Client owns one connection to the server.
//
// Thread Safety:
//   - Not safe for concurrent use; the protocol has no request IDs, so
//     frames can only be matched to requests by reading them in order
//   - Use one Client per goroutine
type Client struct {
	conn net.Conn // Connection to graphd, closed by Quit or Close
}

// Dial connects to addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return New(conn), nil
}

// New wraps an established connection.
func New(conn net.Conn) *Client {
	return &Client{conn: conn}
}

// Send writes one request without waiting for results.
func (c *Client) Send(op string, vertices int, edges []graph.Edge) error {
	return wire.WriteRequest(c.conn, &wire.Request{
		Operation: op,
		Vertices:  vertices,
		Edges:     edges,
		EdgeCount: len(edges),
	})
}

// Recv reads one result frame.
func (c *Client) Recv() (string, error) {
	return wire.ReadResult(c.conn, MaxResultSize)
}

// Do sends a request and reads the frames it produces: four for "all", one
// otherwise. A rejected request produces a single error frame, even for
// "all". The context deadline, if any, applies to the whole exchange.
func (c *Client) Do(ctx context.Context, op string, vertices int, edges []graph.Edge) ([]string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	if err := c.Send(op, vertices, edges); err != nil {
		return nil, fmt.Errorf("send %s: %w", op, err)
	}
	n := FrameCount(op)
	out := make([]string, 0, n)
	for range n {
		res, err := c.Recv()
		if err != nil {
			return out, fmt.Errorf("receive %s: %w", op, err)
		}
		out = append(out, res)
		if strings.HasPrefix(res, wire.ErrorPrefix) {
			break
		}
	}
	return out, nil
}

// Quit asks the server to close the connection and closes it locally.
func (c *Client) Quit() error {
	err := c.Send(wire.OpQuit, 0, nil)
	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close closes the connection without sending quit.
func (c *Client) Close() error {
	return c.conn.Close()
}

// FrameCount returns how many result frames the server sends for op.
// A request rejected by the server always produces exactly one frame.
func FrameCount(op string) int {
	switch op {
	case wire.OpQuit:
		return 0
	case wire.OpAll:
		return len(algorithm.FanOut())
	default:
		return 1
	}
}

// ParseCommand parses an interactive command line of the form
//
//	<op> <V> <u-v> <u-v> ...
//
// "quit" needs no vertex count.
func ParseCommand(line string) (op string, vertices int, edges []graph.Edge, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, nil, ErrEmptyCommand
	}
	op = fields[0]
	if op == wire.OpQuit {
		return op, 0, nil, nil
	}
	if len(fields) < 2 {
		return "", 0, nil, fmt.Errorf("%s: missing vertex count", op)
	}
	if vertices, err = strconv.Atoi(fields[1]); err != nil {
		return "", 0, nil, fmt.Errorf("%s: bad vertex count %q", op, fields[1])
	}
	for _, f := range fields[2:] {
		u, v, ok := strings.Cut(f, "-")
		if !ok {
			return "", 0, nil, fmt.Errorf("%s: bad edge %q: want u-v", op, f)
		}
		e := graph.Edge{}
		if e.U, err = strconv.Atoi(u); err != nil {
			return "", 0, nil, fmt.Errorf("%s: bad edge %q", op, f)
		}
		if e.V, err = strconv.Atoi(v); err != nil {
			return "", 0, nil, fmt.Errorf("%s: bad edge %q", op, f)
		}
		edges = append(edges, e)
	}
	return op, vertices, edges, nil
}
