package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/kataras/golog"

	"github.com/dreamware/graphpipe/internal/pipeline"
)

// Source provides the data behind the endpoints. *pipeline.Pipeline
// satisfies it.
type Source interface {
	State() pipeline.State
	Stats() pipeline.Stats
}

// Handler returns the status routes for src.
func Handler(src Source) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if src.State() != pipeline.StateRunning {
			http.Error(w, src.State().String(), http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(src.Stats())
	})

	return mux
}

// Server wraps an http.Server for the status routes.
//
// Lifecycle:
//  1. NewServer binds the routes to a Source
//  2. Serve or ListenAndServe blocks until Shutdown
//  3. Shutdown drains in-flight requests and makes Serve return nil
//
// Thread Safety:
//   - Handlers only call Source methods, which must be safe for concurrent use
//   - Shutdown may be called from any goroutine
type Server struct {
	srv    *http.Server  // Underlying server with header timeout set
	logger *golog.Logger // Receives start-up messages
}

// NewServer creates a status server bound to addr once Serve is called.
func NewServer(addr string, src Source, logger *golog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           Handler(src),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Serve serves on ln until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Infof("Status endpoint listening on %s", ln.Addr())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("status listen: %w", err)
	}
	return s.Serve(ln)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

var httpClient = &http.Client{Timeout: 5 * time.Second}

// GetJSON fetches url and decodes its JSON body into out.
func GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %s: %d", url, resp.StatusCode)
	}
	return sonic.ConfigDefault.NewDecoder(resp.Body).Decode(out)
}
