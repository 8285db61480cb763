package pipeline

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kataras/golog"

	"github.com/dreamware/graphpipe/internal/algorithm"
	"github.com/dreamware/graphpipe/internal/queue"
	"github.com/dreamware/graphpipe/internal/wire"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

// Config tunes a Pipeline. Zero-valued Limits fields fall back to
// wire.DefaultLimits.
type Config struct {
	Limits       wire.Limits   // Per-request decoding limits
	WriteTimeout time.Duration // Per-frame write deadline; 0 disables it
}

// Pipeline is the request-dispatch server: the connection table, one task
// queue and worker per operation, the result queue and its dispatcher.
// It moves through Running, Draining and Stopped exactly once.
//
// Thread Safety:
//   - All exported methods may be called from any goroutine
//   - Queues carry their own locks; mu only guards listeners and admission
//     of new goroutines so that Wait never races a late Add
//   - Counters are atomics and may be read by Stats at any time
//   - Only the dispatcher goroutine writes to client connections
type Pipeline struct {
	logger    *golog.Logger                              // Destination for all pipeline logs
	tasks     map[algorithm.Operation]*queue.Queue[Task] // One queue per operation, fixed after New
	processed map[algorithm.Operation]*atomic.Uint64     // Completed Tasks per operation
	results   *queue.Queue[ResultEnvelope]               // Worker and handler output, drained by the dispatcher
	conns     *connTable                                 // Live connections keyed by address
	draining  chan struct{}                              // Closed by Shutdown
	listeners []net.Listener                             // Listeners passed to Serve, closed by Shutdown
	cfg       Config                                     // Limits already filled with defaults

	mu       sync.Mutex     // Guards listeners and goroutine admission
	once     sync.Once      // Makes Shutdown one-shot
	workers  sync.WaitGroup // Operation workers and the dispatcher
	handlers sync.WaitGroup // Connection handlers and accept loops

	state     atomic.Int32  // Current State
	accepted  atomic.Uint64 // Connections admitted
	rejected  atomic.Uint64 // Requests answered with an error frame
	delivered atomic.Uint64 // Result frames written
	dropped   atomic.Uint64 // Results discarded for departed or failed connections
}

// New creates a Running pipeline and starts one worker per operation plus
// the response dispatcher. Connections are served by calling Serve.
//
// Parameters:
//   - cfg: Request limits and write deadline; unset limits use defaults
//   - logger: Logger for connection, worker and shutdown events
//
// Example:
//
//	p := pipeline.New(pipeline.Config{WriteTimeout: 30 * time.Second}, logger)
//	go p.Serve(ln)
func New(cfg Config, logger *golog.Logger) *Pipeline {
	cfg.Limits = cfg.Limits.WithDefaults()
	p := &Pipeline{
		cfg:       cfg,
		logger:    logger,
		tasks:     make(map[algorithm.Operation]*queue.Queue[Task]),
		processed: make(map[algorithm.Operation]*atomic.Uint64),
		results:   queue.New[ResultEnvelope](),
		conns:     newConnTable(),
		draining:  make(chan struct{}),
	}
	for _, op := range algorithm.All() {
		p.tasks[op] = queue.New[Task]()
		p.processed[op] = new(atomic.Uint64)
	}

	for _, op := range algorithm.All() {
		p.workers.Add(1)
		go p.runWorker(op)
	}
	p.workers.Add(1)
	go p.runDispatcher()

	return p
}

// State returns the current lifecycle stage.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Serve accepts connections on ln until Shutdown closes it, handling each
// connection on its own goroutine. It returns nil when the listener was
// closed by Shutdown, and the accept error if the listener failed while the
// pipeline was still running. Temporary accept failures are retried with a
// capped backoff.
//
// Serve may be called for several listeners. After Shutdown it closes ln and
// returns nil immediately.
func (p *Pipeline) Serve(ln net.Listener) error {
	p.mu.Lock()
	if p.State() != StateRunning {
		p.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	p.listeners = append(p.listeners, ln)
	p.handlers.Add(1)
	p.mu.Unlock()
	defer p.handlers.Done()

	p.logger.Infof("Accepting connections on %s", ln.Addr())

	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if p.State() != StateRunning {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			if delay == 0 {
				delay = minAcceptDelay
			} else {
				delay *= 2
			}
			if delay > maxAcceptDelay {
				delay = maxAcceptDelay
			}
			p.logger.Warnf("Accept error: %v; retrying in %v", err, delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		if !p.admit() {
			_ = conn.Close()
			return nil
		}
		p.accepted.Add(1)
		go func() {
			defer p.handlers.Done()
			p.handle(conn)
		}()
	}
}

// admit reserves a handler slot unless shutdown has begun.
func (p *Pipeline) admit() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.State() != StateRunning {
		return false
	}
	p.handlers.Add(1)
	return true
}

// Stats returns a snapshot of queue depths and counters.
func (p *Pipeline) Stats() Stats {
	s := Stats{
		State:          p.State().String(),
		Operations:     make(map[string]OperationStats, len(p.tasks)),
		PendingResults: p.results.Len(),
		Accepted:       p.accepted.Load(),
		Rejected:       p.rejected.Load(),
		Delivered:      p.delivered.Load(),
		Dropped:        p.dropped.Load(),
	}
	for op, q := range p.tasks {
		s.Operations[op.String()] = OperationStats{
			Pending:   q.Len(),
			Processed: p.processed[op].Load(),
		}
	}
	handles := p.conns.snapshot()
	s.Connections = len(handles)
	s.Clients = make([]string, len(handles))
	for i, h := range handles {
		s.Clients[i] = h.ID.String()
	}
	return s
}
