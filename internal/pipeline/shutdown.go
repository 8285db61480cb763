package pipeline

import (
	"context"
)

// Shutdown stops the pipeline. The first call moves it to Draining, closes
// every listener and client connection, and closes all queues so that
// workers and the dispatcher return. Pending Tasks and results are
// discarded. Later calls do nothing.
//
// Shutdown does not wait; use Wait for that.
func (p *Pipeline) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		p.state.Store(int32(StateDraining))
		listeners := p.listeners
		p.listeners = nil
		p.mu.Unlock()
		close(p.draining)

		for _, ln := range listeners {
			_ = ln.Close()
		}
		closed := p.conns.closeAll()

		dropped := 0
		for _, q := range p.tasks {
			dropped += q.Close()
		}
		dropped += p.results.Close()

		p.logger.Infof("Shutdown: closed %d listeners and %d connections, discarded %d queued items",
			len(listeners), closed, dropped)
	})
}

// Wait blocks until Shutdown has been called and every pipeline goroutine
// has returned, then marks the pipeline Stopped. It returns ctx.Err() if
// ctx ends first, which happens when a worker is still inside a long
// algorithm.
func (p *Pipeline) Wait(ctx context.Context) error {
	select {
	case <-p.draining:
	case <-ctx.Done():
		return ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		p.handlers.Wait()
		p.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.state.Store(int32(StateStopped))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Shutdown has been called.
func (p *Pipeline) Done() <-chan struct{} {
	return p.draining
}
