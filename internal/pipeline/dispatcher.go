package pipeline

// runDispatcher delivers results until the result queue is closed.
// Results for connections that are no longer registered are dropped. A write
// failure closes and unregisters that connection only.
func (p *Pipeline) runDispatcher() {
	defer p.workers.Done()

	for {
		env, ok := p.results.Pop()
		if !ok {
			p.logger.Debugf("Dispatcher stopped")
			return
		}

		h, ok := p.conns.get(env.Client)
		if !ok {
			p.dropped.Add(1)
			p.logger.Debugf("Dropping %s result for departed client %s", env.Op, env.Client)
			continue
		}

		if err := h.WriteResult(env.Payload, p.cfg.WriteTimeout); err != nil {
			p.dropped.Add(1)
			p.logger.Warnf("Write to client %s failed: %v; closing connection", env.Client, err)
			p.conns.remove(h.ID)
			_ = h.Close()
			continue
		}
		p.delivered.Add(1)
	}
}
