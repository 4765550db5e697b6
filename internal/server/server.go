// Package server exposes the conversation engine over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
	"github.com/nonthaphat/sportsdesk/internal/chat"
	"github.com/nonthaphat/sportsdesk/internal/db"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// EngineFactory creates a fresh conversation engine for a new session.
type EngineFactory func() *chat.Engine

// Server hosts the chat API. Each client session gets its own engine so
// sticky context never bleeds between conversations.
type Server struct {
	cfg        Config
	sessions   *SessionManager
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies.
func New(cfg Config, database *db.DB, newEngine EngineFactory) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: NewSessionManager(database, newEngine),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/chat", s.handleChat)
	r.Get("/api/sessions/{sessionID}/messages", s.handleMessages)
	r.Post("/api/sessions/{sessionID}/sport", s.handleSetSport)
	r.Post("/api/sessions/{sessionID}/reset", s.handleReset)
	r.Get("/ws/chat", s.handleWebSocket)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("sportsdesk server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

type chatAPIRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatAPIResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Sport     string `json:"sport,omitempty"`
	Intent    string `json:"intent,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	session, err := s.sessions.Get(r.Context(), req.SessionID, "api")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	reply := session.Engine.Chat(r.Context(), req.Message)
	s.sessions.RecordExchange(r.Context(), session.ID, req.Message, reply)

	writeJSON(w, http.StatusOK, chatAPIResponse{
		SessionID: session.ID,
		Reply:     reply,
		Sport:     string(session.Engine.Sport()),
		Intent:    session.Engine.Intent(),
	})
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	messages, err := s.sessions.Transcript(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"messages":   messages,
	})
}

func (s *Server) handleSetSport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body struct {
		Sport string `json:"sport"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sport := catalog.Sport("")
	if body.Sport != "" {
		parsed, ok := catalog.Parse(body.Sport)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown sport: "+body.Sport)
			return
		}
		sport = parsed
	}

	session, err := s.sessions.Get(r.Context(), sessionID, "api")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	session.Engine.SetSport(sport)

	writeJSON(w, http.StatusOK, map[string]string{
		"session_id": session.ID,
		"sport":      string(sport),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := s.sessions.Get(r.Context(), sessionID, "api")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	session.Engine.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"session_id": session.ID, "status": "reset"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
