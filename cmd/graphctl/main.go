// Command graphctl is an interactive client for graphd.
//
// Each input line is one request:
//
//	<op> <V> <u-v> <u-v> ...
//
// where op is euler, mst, scc, maxflow, hamilton or all. Results are printed
// as they arrive; "all" prints four. "quit" closes the connection and exits.
//
// With -status, graphctl prints the server's /stats snapshot instead.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kataras/golog"
	"github.com/mattn/go-isatty"

	"github.com/dreamware/graphpipe/internal/client"
	"github.com/dreamware/graphpipe/internal/pipeline"
	"github.com/dreamware/graphpipe/internal/status"
	"github.com/dreamware/graphpipe/internal/wire"
)

// logFatal is a variable to allow mocking golog.Fatalf in tests.
var logFatal = golog.Fatalf

const usage = `Commands:
  <op> <V> <u-v> ...   op is euler, mst, scc, maxflow, hamilton or all
  quit                 close the connection and exit
Example: mst 4 0-1 1-2 2-3`

func main() {
	addr := flag.String("addr", getenv("GRAPHCTL_ADDR", "127.0.0.1:12345"), "graphd address")
	statusURL := flag.String("status", "", "base URL of the graphd status endpoint; print /stats and exit")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	ctx := context.Background()
	if *statusURL != "" {
		if err := printStats(ctx, os.Stdout, *statusURL); err != nil {
			logFatal("stats: %v", err)
		}
		return
	}

	dctx, cancel := context.WithTimeout(ctx, *timeout)
	c, err := client.Dial(dctx, *addr)
	cancel()
	if err != nil {
		logFatal("%v", err)
		return
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if err := repl(ctx, c, os.Stdin, os.Stdout, *timeout, interactive); err != nil {
		logFatal("%v", err)
	}
}

// repl reads commands from in until quit or EOF and prints each result.
// Malformed lines are reported and skipped; a broken connection ends the
// session with an error.
func repl(ctx context.Context, c *client.Client, in io.Reader, out io.Writer, timeout time.Duration, prompt bool) error {
	if prompt {
		fmt.Fprintln(out, usage)
	}

	sc := bufio.NewScanner(in)
	for {
		if prompt {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}

		op, vertices, edges, err := client.ParseCommand(sc.Text())
		if errors.Is(err, client.ErrEmptyCommand) {
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "invalid command: %v\n", err)
			continue
		}
		if op == wire.OpQuit {
			return c.Quit()
		}

		rctx, cancel := context.WithTimeout(ctx, timeout)
		results, err := c.Do(rctx, op, vertices, edges)
		cancel()
		for _, res := range results {
			fmt.Fprintln(out, strings.TrimRight(res, "\n"))
		}
		if err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return c.Quit()
}

// printStats fetches baseURL/stats and prints it as indented JSON.
func printStats(ctx context.Context, out io.Writer, baseURL string) error {
	var stats pipeline.Stats
	url := strings.TrimRight(baseURL, "/") + "/stats"
	if err := status.GetJSON(ctx, url, &stats); err != nil {
		return err
	}
	data, err := sonic.ConfigStd.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// getenv returns the value of k, or def when it is unset or empty.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
