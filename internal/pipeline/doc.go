// Package pipeline implements the graph request-dispatch server.
//
// A Pipeline owns every moving part of the server: one handler goroutine per
// TCP connection, one worker goroutine per algorithm operation, and a single
// response dispatcher. They communicate only through queues:
//
//	conn ─▶ handler ─▶ task queue[op] ─▶ worker[op] ─▶ result queue ─▶ dispatcher ─▶ conn
//
// Handlers decode requests and turn each one into Tasks. A Task carries its
// own Graph; the "all" command fans out to four Tasks, each holding an
// independent copy, so no two workers ever touch the same Graph. Workers
// address their ResultEnvelope by the connection's UUID and the dispatcher
// resolves that address through the connection table. A connection that has
// gone away simply has its pending results dropped.
//
// # Writes
//
// Only the dispatcher writes to client sockets, and each result frame is
// written with a single Write call, so frames never interleave on a
// connection.
//
// # Ordering
//
// Requests on one connection become Tasks in arrival order and each worker is
// FIFO, but results of different operations complete independently. A client
// sending "all" receives four untagged frames in completion order.
//
// # Shutdown
//
// Shutdown moves the pipeline from Running to Draining exactly once. It
// closes listeners and client connections and then closes every queue; a
// closed queue makes Pop return false, which is the stop signal for workers
// and the dispatcher. Wait blocks until all goroutines have returned and the
// pipeline is Stopped. An algorithm already running is not interrupted, so
// callers should bound Wait with a context.
//
// # Example
//
//	p := pipeline.New(pipeline.Config{Limits: wire.DefaultLimits()}, logger)
//	ln, _ := net.Listen("tcp", ":12345")
//	go p.Serve(ln)
//	...
//	p.Shutdown()
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	_ = p.Wait(ctx)
package pipeline
