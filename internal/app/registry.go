package app

import (
	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

// UsernameOf reports a session's display name, falling back to the
// unknown placeholder for sessions that never registered one.
func (h *Hub) UsernameOf(sid core.SessionID) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.conns[sid]; ok && c.username != "" {
		return c.username
	}
	return domain.UnknownUsername
}

// RoomOf reports the room a session currently occupies.
func (h *Hub) RoomOf(sid core.SessionID) (domain.RoomCode, domain.ParticipantID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[sid]
	if !ok || c.roomCode == "" {
		return "", "", false
	}
	return c.roomCode, c.participantID, true
}
