package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dreamware/graphpipe/internal/logging"
	"github.com/dreamware/graphpipe/internal/wire"
)

// Config holds everything cmd/graphd needs to start the pipeline.
type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	StatusAddr      string        `yaml:"status_addr"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownCommand string        `yaml:"shutdown_command"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	MaxVertices     int           `yaml:"max_vertices"`
	MaxEdges        int           `yaml:"max_edges"`
	MaxNameLength   int           `yaml:"max_name_length"`
}

// Default returns the built-in configuration.
func Default() *Config {
	lim := wire.DefaultLimits()
	return &Config{
		ListenAddr:      ":12345",
		LogLevel:        "info",
		ShutdownCommand: "exit",
		ShutdownTimeout: 5 * time.Second,
		WriteTimeout:    30 * time.Second,
		MaxVertices:     lim.MaxVertices,
		MaxEdges:        lim.MaxEdges,
		MaxNameLength:   lim.MaxNameLength,
	}
}

// Limits returns the per-request limits for the wire codec.
func (c *Config) Limits() wire.Limits {
	return wire.Limits{
		MaxVertices:   c.MaxVertices,
		MaxEdges:      c.MaxEdges,
		MaxNameLength: c.MaxNameLength,
	}
}

// Load builds the configuration from defaults, the YAML file named by
// GRAPHD_CONFIG and the environment. envFiles are .env files to merge into the
// environment first; missing files are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()
	if path := os.Getenv("GRAPHD_CONFIG"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ListenAddr = getenv("GRAPHD_LISTEN", c.ListenAddr)
	c.StatusAddr = getenv("GRAPHD_STATUS_ADDR", c.StatusAddr)
	c.LogLevel = getenv("GRAPHD_LOG_LEVEL", c.LogLevel)
	c.ShutdownCommand = getenv("GRAPHD_SHUTDOWN_COMMAND", c.ShutdownCommand)

	var err error
	if c.ShutdownTimeout, err = durationEnv("GRAPHD_SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	if c.WriteTimeout, err = durationEnv("GRAPHD_WRITE_TIMEOUT", c.WriteTimeout); err != nil {
		return err
	}
	if c.MaxVertices, err = intEnv("GRAPHD_MAX_VERTICES", c.MaxVertices); err != nil {
		return err
	}
	if c.MaxEdges, err = intEnv("GRAPHD_MAX_EDGES", c.MaxEdges); err != nil {
		return err
	}
	if c.MaxNameLength, err = intEnv("GRAPHD_MAX_NAME_LENGTH", c.MaxNameLength); err != nil {
		return err
	}
	return nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return errors.New("listen address must not be empty")
	case c.ShutdownCommand == "":
		return errors.New("shutdown command must not be empty")
	case !logging.ValidLevel(c.LogLevel):
		return fmt.Errorf("invalid log level %q: must be one of %v", c.LogLevel, logging.Levels)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	case c.WriteTimeout < 0:
		return fmt.Errorf("write timeout must not be negative, got %v", c.WriteTimeout)
	case c.MaxVertices <= 0, c.MaxEdges <= 0:
		return fmt.Errorf("vertex and edge limits must be positive, got %d/%d", c.MaxVertices, c.MaxEdges)
	case c.MaxNameLength < len(wire.OpQuit):
		return fmt.Errorf("name length limit %d is too small", c.MaxNameLength)
	}
	return nil
}

// getenv returns the value of k, or def when it is unset or empty.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func intEnv(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func durationEnv(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return d, nil
}
