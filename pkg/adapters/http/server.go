package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zorpastaman/behaviortree/pkg/behavior"
	"github.com/zorpastaman/behaviortree/pkg/domain"
	"github.com/zorpastaman/behaviortree/pkg/registry"
)

// State is the JSON view of a running tree served on GET /tree.
type State struct {
	TreeID     string               `json:"tree_id"`
	Frame      uint64               `json:"frame"`
	Status     domain.Status        `json:"status,omitempty"`
	Nodes      []behavior.NodeState `json:"nodes"`
	Blackboard map[string]any       `json:"blackboard,omitempty"`
}

// Tree is the read side of a ticking tree.
// Implementations must be safe to call from request goroutines.
type Tree interface {
	State() State
}

// Server serves a read-only view of one tree.
type Server struct {
	Tree     Tree
	Registry *registry.Registry
	Streams  *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry exposes the registered node types on GET /types.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) {
		s.Registry = reg
	}
}

// WithGatherer exposes metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithStreams shares a StreamManager with the tick loop so it can publish
// frames to GET /events subscribers.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// NewHandler creates a new HTTP handler for tree.
func NewHandler(tree Tree, opts ...Option) http.Handler {
	server := &Server{Tree: tree}
	for _, opt := range opts {
		opt(server)
	}
	if server.logger == nil {
		server.logger = slog.New(slog.DiscardHandler)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}

	r := chi.NewRouter()
	r.Get("/healthz", server.GetHealth)
	r.Get("/tree", server.GetTree)
	r.Get("/events", server.SubscribeEvents)
	if server.Registry != nil {
		r.Get("/types", server.GetTypes)
	}
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetTree handles the GET /tree request.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	if s.Tree == nil {
		http.Error(w, "no tree loaded", http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.Tree.State())
}

// GetTypes handles the GET /types request.
func (s *Server) GetTypes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Registry.Entries())
}

// SubscribeEvents handles the GET /events request (SSE).
// Every published frame is sent as one data event.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
