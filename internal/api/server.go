// Package api serves read-only views of the simulation over HTTP.
// GET endpoints are public observation; the skip endpoint requires a
// bearer token and is disabled when no key is configured.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/ambergrove/hearthome/internal/catalog"
	"github.com/ambergrove/hearthome/internal/econ"
	"github.com/ambergrove/hearthome/internal/engine"
)

const maxRecentEvents = 200

// Server serves the simulation state over HTTP. The daemon pushes fresh
// state into it after every adopted tick via Publish.
type Server struct {
	Port     int
	AdminKey string
	Catalog  *catalog.Catalog

	// Skip fast-forwards the simulation; wired by the daemon. Nil
	// disables the endpoint.
	Skip func(days float64) error

	mu      sync.RWMutex
	env     engine.Envelope
	gameDay float64
	recent  []engine.Event

	stream *streamHub
}

// NewServer creates a server ready to accept Publish calls.
func NewServer(port int, adminKey string, cat *catalog.Catalog) *Server {
	return &Server{
		Port:     port,
		AdminKey: adminKey,
		Catalog:  cat,
		stream:   newStreamHub(),
	}
}

// Publish stores the latest adopted state and fans tick events out to
// stream subscribers.
func (s *Server) Publish(env engine.Envelope, res engine.Result) {
	s.mu.Lock()
	s.env = env
	s.gameDay = res.GameDay
	s.recent = append(s.recent, res.Events...)
	if len(s.recent) > maxRecentEvents {
		s.recent = s.recent[len(s.recent)-maxRecentEvents:]
	}
	s.mu.Unlock()

	for _, ev := range res.Events {
		s.stream.broadcast(ev)
	}
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	go func() {
		addr := fmt.Sprintf(":%d", s.Port)
		slog.Info("api listening", "addr", addr)
		if err := http.ListenAndServe(addr, s.routes()); err != nil {
			slog.Error("api server stopped", "error", err)
		}
	}()
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/garden", s.handleGarden)
	mux.HandleFunc("GET /api/v1/pantry", s.handlePantry)
	mux.HandleFunc("GET /api/v1/economy", s.handleEconomy)
	mux.HandleFunc("GET /api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	mux.HandleFunc("GET /api/v1/stream", s.handleStream)
	mux.HandleFunc("POST /api/v1/skip", s.requireAdmin(s.handleSkip))
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, map[string]any{
		"game_day": s.gameDay,
		"units":    len(s.env.Snapshot.Units),
		"goods":    len(s.env.Snapshot.Goods),
		"money":    s.env.Snapshot.Econ.Money,
	})
}

func (s *Server) handleGarden(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, map[string]any{
		"game_day": s.gameDay,
		"units":    s.env.Snapshot.Units,
	})
}

func (s *Server) handlePantry(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, map[string]any{
		"game_day": s.gameDay,
		"goods":    s.env.Snapshot.Goods,
	})
}

func (s *Server) handleEconomy(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := s.env.Snapshot.Econ
	runway := econ.ProjectRunwayDays(
		state.Money,
		state.WeeklyRent+state.WeeklyGroceryBase,
		s.env.Snapshot.WeeklyIncome,
	)

	resp := map[string]any{
		"econ":           state,
		"weekly_income":  s.env.Snapshot.WeeklyIncome,
		"runway_forever": math.IsInf(runway, 1),
	}
	if !math.IsInf(runway, 1) {
		resp["runway_days"] = runway
	}
	writeJSON(w, resp)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if s.Catalog == nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{
		"plants":    s.Catalog.Plants,
		"mushrooms": s.Catalog.Mushrooms,
		"equipment": s.Catalog.Equipment,
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxRecentEvents {
			limit = n
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.recent
	if len(events) > limit {
		events = events[len(events)-limit:]
	}
	writeJSON(w, map[string]any{"events": events})
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	if s.Skip == nil {
		http.Error(w, "skip not available", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Days float64 `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Days <= 0 {
		http.Error(w, "body must be {\"days\": n} with n > 0", http.StatusBadRequest)
		return
	}

	if err := s.Skip(req.Days); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"skipped_days": req.Days})
}

func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token != s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}
