// Package config loads the server configuration.
//
// # Sources
//
// Values are layered, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. An optional YAML file named by GRAPHD_CONFIG
//  3. The process environment, after a .env file (if present) has been
//     merged into it. Variables already set in the environment are never
//     overridden by .env.
//
// # Environment
//
//	GRAPHD_CONFIG            path to a YAML file (optional)
//	GRAPHD_LISTEN            TCP listen address (default ":12345")
//	GRAPHD_STATUS_ADDR       status HTTP address, empty disables it
//	GRAPHD_LOG_LEVEL         debug | info | warn | error | disable
//	GRAPHD_SHUTDOWN_COMMAND  stdin line that triggers shutdown (default "exit")
//	GRAPHD_SHUTDOWN_TIMEOUT  how long to wait for workers on shutdown (default 5s)
//	GRAPHD_WRITE_TIMEOUT     per-frame write deadline, 0 disables (default 30s)
//	GRAPHD_MAX_VERTICES      vertex limit per request (default 4096)
//	GRAPHD_MAX_EDGES         edge limit per request (default 1048576)
//	GRAPHD_MAX_NAME_LENGTH   operation name limit in bytes (default 64)
//
// # YAML
//
//	listen_addr: ":12345"
//	status_addr: "127.0.0.1:8080"
//	log_level: debug
//	shutdown_timeout: 10s
//	max_vertices: 1024
package config
