package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	Type      string `json:"type"`       // "message", "set_sport" or "reset"
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string `json:"type"` // "response", "state" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	Sport     string `json:"sport,omitempty"`
	Intent    string `json:"intent,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			sendError(conn, "", "invalid message format")
			continue
		}

		switch req.Type {
		case "message":
			s.wsMessage(conn, r, req)
		case "set_sport":
			s.wsSetSport(conn, r, req)
		case "reset":
			s.wsReset(conn, r, req)
		default:
			sendError(conn, req.SessionID, "unknown message type: "+req.Type)
		}
	}
}

func (s *Server) wsMessage(conn *websocket.Conn, r *http.Request, req wsRequest) {
	if req.Content == "" {
		sendError(conn, req.SessionID, "content is required")
		return
	}

	session, err := s.sessions.Get(r.Context(), req.SessionID, "websocket")
	if err != nil {
		sendError(conn, req.SessionID, err.Error())
		return
	}

	reply := session.Engine.Chat(r.Context(), req.Content)
	s.sessions.RecordExchange(r.Context(), session.ID, req.Content, reply)

	sendResponse(conn, wsResponse{
		Type:      "response",
		SessionID: session.ID,
		Content:   reply,
		Sport:     string(session.Engine.Sport()),
		Intent:    session.Engine.Intent(),
	})
}

func (s *Server) wsSetSport(conn *websocket.Conn, r *http.Request, req wsRequest) {
	sport := catalog.Sport("")
	if req.Content != "" {
		parsed, ok := catalog.Parse(req.Content)
		if !ok {
			sendError(conn, req.SessionID, "unknown sport: "+req.Content)
			return
		}
		sport = parsed
	}

	session, err := s.sessions.Get(r.Context(), req.SessionID, "websocket")
	if err != nil {
		sendError(conn, req.SessionID, err.Error())
		return
	}
	session.Engine.SetSport(sport)

	sendResponse(conn, wsResponse{
		Type:      "state",
		SessionID: session.ID,
		Sport:     string(sport),
	})
}

func (s *Server) wsReset(conn *websocket.Conn, r *http.Request, req wsRequest) {
	session, err := s.sessions.Get(r.Context(), req.SessionID, "websocket")
	if err != nil {
		sendError(conn, req.SessionID, err.Error())
		return
	}
	session.Engine.Reset()

	sendResponse(conn, wsResponse{
		Type:      "state",
		SessionID: session.ID,
		Content:   "reset",
	})
}

func sendResponse(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func sendError(conn *websocket.Conn, sessionID, message string) {
	resp := wsResponse{
		Type:      "error",
		SessionID: sessionID,
		Content:   message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
