package logging

import (
	"fmt"
	"io"

	"github.com/kataras/golog"
	"golang.org/x/exp/slices"
)

// Levels lists the accepted level names, most verbose first.
var Levels = []string{"debug", "info", "warn", "error", "disable"}

// ValidLevel reports whether level is one of Levels.
func ValidLevel(level string) bool {
	return slices.Contains(Levels, level)
}

// New returns an isolated logger writing to out at the given level. It does
// not touch golog's package-level default logger.
func New(level string, out io.Writer) (*golog.Logger, error) {
	if !ValidLevel(level) {
		return nil, fmt.Errorf("invalid log level %q: must be one of %v", level, Levels)
	}
	logger := golog.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetTimeFormat("2006-01-02 15:04:05")
	return logger, nil
}

// Discard returns a logger that drops everything. Intended for tests.
func Discard() *golog.Logger {
	logger := golog.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel("disable")
	return logger
}
