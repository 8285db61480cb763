// Command graphd runs the graph request-dispatch server.
//
// It listens for binary graph requests on GRAPHD_LISTEN (default :12345),
// runs each requested algorithm on its own worker and writes the text
// results back to the requesting connection. Typing "exit" on stdin, or
// sending SIGINT/SIGTERM, shuts the server down.
//
// Configuration is read from the environment, an optional .env file in the
// working directory and the YAML file named by GRAPHD_CONFIG. See package
// internal/config for the full list of settings.
package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/kataras/golog"
	"golang.org/x/sync/errgroup"

	"github.com/dreamware/graphpipe/internal/config"
	"github.com/dreamware/graphpipe/internal/control"
	"github.com/dreamware/graphpipe/internal/logging"
	"github.com/dreamware/graphpipe/internal/pipeline"
	"github.com/dreamware/graphpipe/internal/status"
)

// logFatal is a variable to allow mocking golog.Fatalf in tests.
var logFatal = golog.Fatalf

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logFatal("config: %v", err)
		return
	}
	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		logFatal("logging: %v", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, logger); err != nil {
		logFatal("graphd: %v", err)
		return
	}
	logger.Info("graphd stopped")
}

// run listens on the configured address and serves until shutdown.
func run(ctx context.Context, cfg *config.Config, stdin io.Reader, logger *golog.Logger) error {
	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.ListenAddr, err)
	}
	return serve(ctx, cfg, ln, stdin, logger)
}

// serve runs the pipeline on ln together with the optional status endpoint
// and the stdin command watcher. It returns once the pipeline has stopped,
// which happens when ctx ends, the shutdown command is read, or a listener
// fails.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener, stdin io.Reader, logger *golog.Logger) error {
	p := pipeline.New(pipeline.Config{
		Limits:       cfg.Limits(),
		WriteTimeout: cfg.WriteTimeout,
	}, logger)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.Serve(ln)
	})

	var statusSrv *status.Server
	if cfg.StatusAddr != "" {
		statusSrv = status.NewServer(cfg.StatusAddr, p, logger)
		g.Go(statusSrv.ListenAndServe)
	}

	if stdin != nil {
		w := control.NewWatcher(stdin, cfg.ShutdownCommand, p, logger)
		g.Go(func() error {
			return w.Run(gctx)
		})
		logger.Infof("Type %q to stop the server", cfg.ShutdownCommand)
	}

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-p.Done():
		}
		p.Shutdown()

		wctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if statusSrv != nil {
			if err := statusSrv.Shutdown(wctx); err != nil {
				logger.Warnf("Status server shutdown: %v", err)
			}
		}
		if err := p.Wait(wctx); err != nil {
			return fmt.Errorf("pipeline did not stop within %v: %w", cfg.ShutdownTimeout, err)
		}
		return nil
	})

	return g.Wait()
}
