package pipeline

import (
	"time"

	"github.com/dreamware/graphpipe/internal/algorithm"
)

// runWorker processes Tasks for op until its queue is closed.
// An algorithm call is never interrupted; shutdown takes effect at the next Pop.
func (p *Pipeline) runWorker(op algorithm.Operation) {
	defer p.workers.Done()

	q := p.tasks[op]
	compute := algorithm.Resolve(op)
	for {
		task, ok := q.Pop()
		if !ok {
			p.logger.Debugf("Worker %s stopped", op)
			return
		}

		start := time.Now()
		out := compute(task.Graph)
		p.processed[op].Add(1)
		p.logger.Debugf("Worker %s: client %s done in %v", op, task.Client, time.Since(start))

		p.results.Push(ResultEnvelope{
			Client:  task.Client,
			Op:      op.String(),
			Payload: []byte(out),
		})
	}
}
