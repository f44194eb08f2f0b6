// Package web serves the HTTP API, the local demo UI and the operational
// endpoints from a single server.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/factybot/facty/pkg/agent"
	"github.com/factybot/facty/pkg/logger"
	"github.com/factybot/facty/pkg/safety"
	"github.com/factybot/facty/pkg/session"
)

//go:embed static/*
var staticFS embed.FS

// Server hosts the chat API, demo UI, websocket chat and health/metrics.
type Server struct {
	host     string
	port     int
	agent    *agent.Agent
	activity *ActivityBuffer
	server   *http.Server
}

// NewServer creates the web server around an agent.
func NewServer(host string, port int, a *agent.Agent) *Server {
	return &Server{
		host:     host,
		port:     port,
		agent:    a,
		activity: NewActivityBuffer(100),
	}
}

// Handler builds the route table. Split out from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/activity", s.handleActivity)
	mux.HandleFunc("/api/sessions/", s.handleSessions)
	mux.HandleFunc("/ws", s.handleWebsocket)

	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/static/index.html", http.StatusFound)
	})

	return withCORS(mux)
}

// Start runs the server until Stop is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.host, s.port),
		Handler: s.Handler(),
	}
	logger.Info("web").Str("addr", s.server.Addr).Msg("server listening")
	return s.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "READY")
}

type chatRequest struct {
	Identity string `json:"identity"`
	Message  string `json:"message"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// handleChat serves both calling styles: with an identity the conversation is
// session-backed and onboarding happens over successive calls; without one,
// name and age must ride along on every request.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	var reply string
	switch {
	case req.Identity != "":
		identity := "web:" + req.Identity
		s.activity.Record("in", identity, req.Message)
		reply = s.agent.HandleMessage(r.Context(), "web", identity, req.Message)
		s.activity.Record("out", identity, reply)

	case req.Name == "":
		reply = "👋 Bonjour ! Je suis FactCheck_Bot. Pour commencer, dis-moi ton prénom 🙂"

	case req.Age == 0:
		reply = fmt.Sprintf("Enchanté %s ! Quel âge as-tu ?", req.Name)

	default:
		var err error
		reply, err = s.agent.HandleDirect(r.Context(), "web", req.Name, req.Age, req.Message)
		if errors.Is(err, safety.ErrImplausibleAge) {
			reply = "🤨 Cet âge me semble bizarre... Peux-tu me donner ton vrai âge ?"
		} else if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, chatResponse{Response: reply})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.activity.Events())
}

// handleSessions serves /api/sessions/{id}/stats and /api/sessions/{id}/reset.
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	identity := "web:" + parts[0]

	switch parts[1] {
	case "stats":
		sess, ok := s.agent.Store().Get(identity)
		if !ok || sess.State != session.StateReady {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, sess.Stats())

	case "reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.agent.Reset(identity)
		writeJSON(w, map[string]string{"status": "reset"})

	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("web").Err(err).Msg("encoding response")
	}
}

// withCORS allows any origin; the demo UI runs from arbitrary local hosts.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
