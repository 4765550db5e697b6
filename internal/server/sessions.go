package server

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/nonthaphat/sportsdesk/internal/chat"
	"github.com/nonthaphat/sportsdesk/internal/db"
)

// Session pairs a session id with its dedicated conversation engine.
type Session struct {
	ID     string
	Engine *chat.Engine
}

// StoredMessage is one persisted transcript row.
type StoredMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// SessionManager owns the live engines and the persistent transcript.
// Engines live in memory for the process lifetime; the transcript in SQLite
// survives restarts for later inspection, but conversational state does not.
type SessionManager struct {
	mu        sync.Mutex
	engines   map[string]*chat.Engine
	newEngine EngineFactory
	db        *db.DB
}

// NewSessionManager creates a SessionManager.
func NewSessionManager(database *db.DB, newEngine EngineFactory) *SessionManager {
	return &SessionManager{
		engines:   make(map[string]*chat.Engine),
		newEngine: newEngine,
		db:        database,
	}
}

// Get returns the session for the given id, creating engine and session row
// as needed. An empty id starts a fresh session.
func (m *SessionManager) Get(ctx context.Context, sessionID, client string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	engine, ok := m.engines[sessionID]
	if !ok {
		engine = m.newEngine()
		m.engines[sessionID] = engine
		if m.db != nil {
			_, err := m.db.ExecContext(ctx, `
				INSERT INTO chat_sessions (id, client, created_at)
				VALUES (?, ?, datetime('now'))
				ON CONFLICT(id) DO NOTHING`,
				sessionID, client)
			if err != nil {
				return nil, fmt.Errorf("creating session %s: %w", sessionID, err)
			}
		}
	}

	return &Session{ID: sessionID, Engine: engine}, nil
}

// RecordExchange persists one (user, assistant) pair of transcript rows.
// Persistence is best-effort: a transcript write failure is logged and never
// fails the chat turn.
func (m *SessionManager) RecordExchange(ctx context.Context, sessionID, userText, assistantText string) {
	if m.db == nil {
		return
	}
	for _, row := range []struct{ role, content string }{
		{"user", userText},
		{"assistant", assistantText},
	} {
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO chat_messages (id, session_id, role, content, created_at)
			VALUES (?, ?, ?, ?, datetime('now'))`,
			uuid.NewString(), sessionID, row.role, row.content)
		if err != nil {
			log.Printf("server: recording transcript for %s: %v", sessionID, err)
			return
		}
	}
}

// Transcript returns the persisted messages of a session, oldest first.
func (m *SessionManager) Transcript(ctx context.Context, sessionID string) ([]StoredMessage, error) {
	if m.db == nil {
		return nil, nil
	}
	rows, err := m.db.QueryContext(ctx, `
		SELECT role, content, created_at FROM chat_messages
		WHERE session_id = ? ORDER BY created_at, id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading transcript for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var messages []StoredMessage
	for rows.Next() {
		var msg StoredMessage
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transcript row: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
