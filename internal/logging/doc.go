// Package logging builds the golog loggers used across the service.
//
// Every long-lived component (the pipeline, the command watcher, the status
// server) receives its *golog.Logger from the caller instead of logging
// through golog's package-level default. cmd/graphd builds one logger from
// the configured level and hands it down; tests use Discard.
//
// # Levels
//
//	debug    per-connection and per-Task events
//	info     startup, shutdown and rejected requests
//	warn     framing errors, write failures, accept retries
//	error    unexpected failures
//	disable  no output
//
// # Example
//
//	logger, err := logging.New("info", os.Stderr)
//	if err != nil {
//	    return err
//	}
//	logger.Infof("Accepting connections on %s", addr)
package logging
