package pipeline

import (
	"errors"
	"net"

	"github.com/google/uuid"

	"github.com/dreamware/graphpipe/internal/algorithm"
	"github.com/dreamware/graphpipe/internal/wire"
)

// handle serves one connection until the peer quits, the stream breaks or
// the pipeline shuts down. It never writes to conn.
func (p *Pipeline) handle(conn net.Conn) {
	h := newClientHandle(conn)
	if !p.conns.add(h) {
		_ = h.Close()
		return
	}
	defer func() {
		p.conns.remove(h.ID)
		_ = h.Close()
	}()

	p.logger.Debugf("Client %s connected from %s", h.ID, h.RemoteAddr())

	for p.State() == StateRunning {
		req, err := wire.ReadRequest(conn, p.cfg.Limits)
		if err != nil {
			p.logReadError(h, err)
			return
		}
		if req.Operation == wire.OpQuit {
			p.logger.Debugf("Client %s quit", h.ID)
			return
		}
		if err := p.submit(h.ID, req); err != nil {
			p.reject(h.ID, req.Operation, err)
		}
	}
}

// submit turns a decoded request into Tasks. "all" fans out to every
// operation in algorithm.FanOut, each Task with its own copy of the graph.
func (p *Pipeline) submit(client uuid.UUID, req *wire.Request) error {
	var ops []algorithm.Operation
	if req.Operation == wire.OpAll {
		ops = algorithm.FanOut()
	} else {
		op, err := algorithm.Parse(req.Operation)
		if err != nil {
			return err
		}
		ops = []algorithm.Operation{op}
	}

	g, err := req.Validate(p.cfg.Limits)
	if err != nil {
		return err
	}

	for i, op := range ops {
		tg := g
		if i > 0 {
			tg = g.Clone()
		}
		if !p.tasks[op].Push(Task{Client: client, Op: op, Graph: tg}) {
			return nil
		}
	}
	p.logger.Debugf("Client %s queued %s (V=%d, E=%d)", client, req.Operation, req.Vertices, req.EdgeCount)
	return nil
}

// reject sends a one-line error frame back to client through the dispatcher.
func (p *Pipeline) reject(client uuid.UUID, name string, err error) {
	p.rejected.Add(1)
	p.logger.Infof("Client %s: rejected request %q: %v", client, name, err)
	p.results.Push(ResultEnvelope{
		Client:  client,
		Op:      name,
		Payload: []byte(wire.ErrorPrefix + err.Error()),
	})
}

func (p *Pipeline) logReadError(h *ClientHandle, err error) {
	var fe *wire.FramingError
	switch {
	case errors.Is(err, wire.ErrConnectionClosed):
		p.logger.Debugf("Client %s disconnected", h.ID)
	case errors.As(err, &fe):
		p.logger.Warnf("Client %s: %v; closing connection", h.ID, err)
	case p.State() != StateRunning:
		p.logger.Debugf("Client %s closed by shutdown", h.ID)
	default:
		p.logger.Warnf("Client %s: read failed: %v", h.ID, err)
	}
}
