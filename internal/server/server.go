// Package server provides the live-preview HTTP server: a small JSON
// API plus a WebSocket endpoint that standardizes text as it is typed.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/FocuswithJustin/CedarVerse/internal/logging"
)

// Config holds the server listen settings.
type Config struct {
	Host string
	Port int
}

// Server serves the standardization preview API.
type Server struct {
	cfg Config
}

// New builds a Server from cfg.
func New(cfg Config) *Server {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 8174
	}
	return &Server{cfg: cfg}
}

// Handler returns the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/standardize", s.handleStandardize)
	mux.HandleFunc("/api/books", s.handleBooks)
	mux.HandleFunc("/ws", s.handleWebSocket)

	return logging.CombinedMiddleware(securityHeaders(cors(mux)))
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	logging.ServerStartup("preview", "http", s.cfg.Port, "host", s.cfg.Host)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// cors permits browser access from any origin. The server binds to
// localhost and carries no credentials, so the open policy is safe.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
