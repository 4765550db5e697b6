package chat

import (
	"strings"

	"github.com/nonthaphat/sportsdesk/internal/catalog"
)

// SessionState holds the sticky conversation context: the sport the
// conversation is currently locked to and the sub-topic being discussed.
// Zero values mean unconstrained. State lives for the session and is owned
// by exactly one Engine; it is never shared across conversations.
type SessionState struct {
	Sport  catalog.Sport
	Intent string
}

// ApplyAnalysis merges analyzer output under the sticky rule: a detection
// replaces the corresponding lock only when it is a real value. Absent
// detections and the "none" sentinel leave the lock untouched, so a locked
// sport persists across follow-up turns until explicitly replaced. A sport
// string outside the catalog is treated as no detection rather than stored.
func (s *SessionState) ApplyAnalysis(a Analysis) {
	if sport, ok := catalog.Parse(a.Sport); ok {
		s.Sport = sport
	}
	if intent := normalizeIntent(a.Intent); intent != "" {
		s.Intent = intent
	}
}

// SetSport is the manual override path: it sets the lock unconditionally,
// bypassing the sticky rule. An empty sport returns the session to the
// unconstrained all-sports state.
func (s *SessionState) SetSport(sport catalog.Sport) {
	s.Sport = sport
}

func normalizeIntent(raw string) string {
	raw = strings.TrimSpace(raw)
	switch strings.ToLower(raw) {
	case "", "none", "null":
		return ""
	}
	return raw
}
