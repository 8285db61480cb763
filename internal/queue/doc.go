// Package queue provides the unbounded FIFO that connects the pipeline stages.
//
// # Overview
//
// Every operation worker owns one Queue of Tasks, and the response dispatcher
// owns the single Queue of results. Producers (connection handlers, workers)
// never block on Push; the single consumer of each queue blocks in Pop until
// an item arrives or the queue is closed.
//
// # Shutdown
//
// Close is the stop signal. Once a queue is closed, Pop returns the zero
// value with ok == false (the sentinel) even if items are still pending, and
// Push drops its item. Pending items are discarded because their connections
// are closed at the same moment by the shutdown sequence.
//
//	for {
//	    task, ok := q.Pop()
//	    if !ok {
//	        return // closed
//	    }
//	    handle(task)
//	}
//
// # Concurrency Model
//
// Each Queue guards its storage with its own mutex and condition variable.
// The lock is only held while the slice is manipulated; callers never block
// while holding it.
package queue
