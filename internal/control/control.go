package control

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kataras/golog"
)

// Shutdowner is anything that can be told to stop.
type Shutdowner interface {
	Shutdown()
}

// Watcher reads commands line by line and calls Shutdown when it sees its
// command. Other non-empty lines are logged and ignored. Surrounding
// whitespace is trimmed before comparing.
//
// Thread Safety:
//   - Run must be called at most once
//   - The target's Shutdown must tolerate being called concurrently with
//     other shutdown triggers (pipeline.Pipeline.Shutdown is one-shot)
type Watcher struct {
	in      io.Reader     // Command source, normally os.Stdin
	target  Shutdowner    // Stopped when the command is read
	logger  *golog.Logger // Receives unknown-command warnings
	command string        // Line that triggers Shutdown
}

// NewWatcher creates a watcher over in (normally os.Stdin).
//
// Example:
//
//	w := control.NewWatcher(os.Stdin, "exit", p, logger)
//	go w.Run(ctx)
func NewWatcher(in io.Reader, command string, target Shutdowner, logger *golog.Logger) *Watcher {
	return &Watcher{in: in, command: command, target: target, logger: logger}
}

// Run blocks until the command is read, in reaches EOF, or ctx is done.
// Only reading the command triggers Shutdown. The reader goroutine may stay
// blocked in Read after ctx ends; it exits when in is closed.
func (w *Watcher) Run(ctx context.Context) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		sc := bufio.NewScanner(w.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-lines:
			cmd := strings.TrimSpace(line)
			switch cmd {
			case "":
			case w.command:
				w.logger.Infof("Received %q command, shutting down", cmd)
				w.target.Shutdown()
				return nil
			default:
				w.logger.Warnf("Unknown command %q (type %q to stop the server)", cmd, w.command)
			}
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("read commands: %w", err)
			}
			w.logger.Debugf("Command input closed")
			return nil
		}
	}
}
