// Package api exposes a plan result over HTTP: a health check, a
// point-in-time JSON snapshot, a WebSocket stream that pushes a new
// snapshot every time one is published, and a Prometheus scrape
// endpoint. It generalizes the teacher's single-snapshot api.Server onto
// a push channel, grounded on the livefeed WebSocket streamer's
// client-registry/ping-pong pattern.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/freshness"
	"github.com/relaylink/skyplan/orchestrator"
)

// PlanSnapshot is the wire representation of a plan result: everything
// in orchestrator.PlanResult except the contact graph, which carries no
// exported fields and has nothing useful to serialize.
type PlanSnapshot struct {
	RunID     string                                   `json:"runId"`
	Downlinks map[string]map[int]map[string]time.Time `json:"downlinks"`
	Paths     map[string]map[int][]contactgraph.Node  `json:"paths"`
	PassTimes map[string]orchestrator.PassTimes        `json:"passTimes"`
	Metrics   freshness.Result                         `json:"metrics"`
	Timings   orchestrator.Timings                     `json:"timings"`
}

func snapshotFrom(r orchestrator.PlanResult) PlanSnapshot {
	return PlanSnapshot{
		RunID:     r.RunID,
		Downlinks: r.Downlinks,
		Paths:     r.Paths,
		PassTimes: r.PassTimes,
		Metrics:   r.Metrics,
		Timings:   r.Timings,
	}
}

// Server serves the most recently published plan result and fans out
// every new one to connected stream clients.
type Server struct {
	addr     string
	logger   *logrus.Logger
	registry *prometheus.Registry

	mu      sync.RWMutex
	latest  PlanSnapshot
	hasPlan bool

	clientsMu sync.RWMutex
	clients   map[*client]bool
	upgrader  websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan PlanSnapshot
}

// NewServer constructs a Server. A nil logger falls back to logrus's
// standard logger; a nil registry gets a fresh, private one.
func NewServer(addr string, logger *logrus.Logger, registry *prometheus.Registry) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Server{
		addr:     addr,
		logger:   logger,
		registry: registry,
		clients:  make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Registry returns the Prometheus registry backing /metrics, so callers
// can register additional collectors (e.g. obs.PhaseTimings) onto it.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Handler builds the HTTP routing table. Exposed separately from Start
// so tests can exercise it with httptest without binding a real port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/plan/snapshot", s.snapshotHandler)
	mux.HandleFunc("/plan/stream", s.streamHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	s.logger.WithField("addr", s.addr).Info("plan API server listening")
	return srv.ListenAndServe()
}

// Publish records result as the latest plan and pushes it to every
// connected stream client. A client with a full send buffer is skipped
// rather than blocked.
func (s *Server) Publish(result orchestrator.PlanResult) {
	snap := snapshotFrom(result)

	s.mu.Lock()
	s.latest = snap
	s.hasPlan = true
	s.mu.Unlock()

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- snap:
		default:
		}
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{Status: "ok", Time: time.Now().UTC().Format(time.RFC3339)})
}

type snapshotResponse struct {
	Message string       `json:"message"`
	HasPlan bool         `json:"hasPlan"`
	Plan    PlanSnapshot `json:"plan,omitempty"`
}

func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := snapshotResponse{Message: "current plan result", HasPlan: s.hasPlan, Plan: s.latest}
	s.mu.RUnlock()
	writeJSON(w, resp)
}

func (s *Server) streamHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Error("failed to upgrade plan stream connection")
		return
	}

	c := &client{conn: conn, send: make(chan PlanSnapshot, 4)}
	s.registerClient(c)

	s.mu.RLock()
	if s.hasPlan {
		select {
		case c.send <- s.latest:
		default:
		}
	}
	s.mu.RUnlock()

	go s.writePump(c)
	s.readPump(c)
}

func (s *Server) registerClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[c] = true
}

func (s *Server) unregisterClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
}

func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			data, err := json.Marshal(snap)
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains and discards client messages; the stream is
// one-directional, but a read loop is still required to notice the
// client going away and to answer pings/pongs.
func (s *Server) readPump(c *client) {
	defer func() {
		s.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
