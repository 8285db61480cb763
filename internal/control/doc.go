// Package control turns operator input into a pipeline shutdown.
//
// The server is stopped by typing a command (by default "exit") on its
// standard input, or by a signal handled in cmd/graphd. A Watcher reads its
// input line by line; when the command arrives it calls Shutdown on its
// target and returns. Unknown commands are logged and ignored. End of input
// does not stop the server, so it can run with stdin attached to /dev/null.
//
// # Example
//
//	w := control.NewWatcher(os.Stdin, "exit", p, logger)
//	go func() {
//	    if err := w.Run(ctx); err != nil {
//	        logger.Errorf("command watcher: %v", err)
//	    }
//	}()
//
// # Concurrency Model
//
// Run owns one reader goroutine that feeds lines through an unbuffered
// channel. Run returns when the command is seen, the input ends, or its
// context is canceled. A reader blocked inside Read cannot be interrupted;
// it exits when the input is closed.
package control
