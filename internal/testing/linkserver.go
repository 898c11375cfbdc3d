package testing

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// LinkServer serves fixed responses to link checks and counts requests
type LinkServer struct {
	*httptest.Server
	requests atomic.Int32
}

// Requests returns how many requests the server has answered
func (s *LinkServer) Requests() int {
	return int(s.requests.Load())
}

type LinkServerOption func(*linkServerConfig)

type linkServerConfig struct {
	method string
}

// WithMethodValidation fails the test when a request uses another method
func WithMethodValidation(method string) LinkServerOption {
	return func(cfg *linkServerConfig) {
		cfg.method = method
	}
}

// NewLinkServer serves routes and closes the server when the test ends
func NewLinkServer(t *testing.T, routes map[string]http.HandlerFunc, opts ...LinkServerOption) *LinkServer {
	t.Helper()
	cfg := &linkServerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	server := &LinkServer{}
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			server.requests.Add(1)
			if cfg.method != "" && r.Method != cfg.method {
				t.Errorf("Expected %s request, got %s", cfg.method, r.Method)
			}
			handler(w, r)
		})
	}

	server.Server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// StatusHandler answers every request with code
func StatusHandler(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

// RedirectHandler answers every request with a permanent redirect to location
func RedirectHandler(location string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, location, http.StatusMovedPermanently)
	}
}
