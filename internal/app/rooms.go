package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

// JoinRoom adds a session to a room, notifying prior occupants and
// answering the joiner with the current peer list. Rooms are created
// lazily; the first joiner fixes the room kind. A session already in
// another room leaves it first, with a normal user_left to its peers.
func (h *Hub) JoinRoom(
	sid core.SessionID,
	code domain.RoomCode,
	participantID domain.ParticipantID,
	username string,
	kind domain.RoomKind,
) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[sid]
	if !ok {
		return fmt.Errorf("join_room %s: %w", sid, core.ErrNotFound)
	}
	if code == "" || participantID == "" || username == "" {
		h.metrics.JoinsRejected.WithLabelValues("validation").Inc()
		h.send(c, core.Notice{Type: core.MsgJoinFailed, Message: "Missing roomCode, userId, or username."})
		return fmt.Errorf("join_room: missing field: %w", core.ErrValidation)
	}
	if err := domain.CheckUsername(username); err != nil {
		h.metrics.JoinsRejected.WithLabelValues("validation").Inc()
		h.send(c, core.Notice{Type: core.MsgJoinFailed, Message: "Username too long."})
		return fmt.Errorf("join_room: %v: %w", err, core.ErrValidation)
	}

	// A connection occupies at most one room slot. Rejoining the same
	// room under a new participant id releases the old slot first, so
	// the stale record cannot ghost-occupy the room and the rejoiner's
	// own slot is not counted against the capacity check.
	if c.roomCode == code && c.participantID != participantID {
		h.leaveLocked(c, c.roomCode, c.participantID)
	}

	r, exists := h.rooms[code]
	if exists {
		if r.kind != kind {
			// The first joiner fixed the kind; a conflicting request is ignored.
			log.Warn().Str("module", "app.rooms").
				Str("room", string(code)).
				Str("requested_kind", kind.String()).
				Str("room_kind", r.kind.String()).
				Msg("room kind mismatch ignored")
		}
		if r.kind == domain.RoomKindCall && len(r.occupants) >= domain.CallRoomCapacity {
			h.metrics.JoinsRejected.WithLabelValues("room_full").Inc()
			h.send(c, core.Notice{Type: core.MsgRoomFull, Message: "This room is currently full."})
			return fmt.Errorf("join_room %s: %w", code, core.ErrRoomFull)
		}
	}

	// Joining a second room while still in one: auto-leave the first.
	if c.roomCode != "" && c.roomCode != code {
		h.leaveLocked(c, c.roomCode, c.participantID)
	}

	if !exists {
		r = &room{
			code:      code,
			kind:      kind,
			occupants: make(map[domain.ParticipantID]*occupant),
		}
		h.rooms[code] = r
		h.metrics.ActiveRooms.Inc()
		log.Info().Str("module", "app.rooms").Str("room", string(code)).Str("kind", kind.String()).Msg("room created")
	}

	c.username = username
	joined := core.UserJoined{
		Type:       core.MsgUserJoined,
		UserID:     string(participantID),
		Username:   username,
		SocketID:   string(sid),
		ChatUserID: string(c.chatUserID),
	}
	peers := make([]core.PeerInfo, 0, len(r.occupants))
	for pid, occ := range r.occupants {
		if pid == participantID {
			continue
		}
		peers = append(peers, core.PeerInfo{
			UserID:   string(pid),
			Username: occ.username,
			SocketID: string(occ.sid),
		})
		if peerConn, ok := h.conns[occ.sid]; ok {
			h.send(peerConn, joined)
		}
	}

	r.occupants[participantID] = &occupant{sid: sid, username: username, chatUserID: c.chatUserID}
	c.roomCode = code
	c.participantID = participantID

	h.send(c, core.RoomJoined{Type: core.MsgRoomJoined, RoomCode: string(code), Peers: peers})
	log.Info().Str("module", "app.rooms").
		Str("sid", string(sid)).Str("room", string(code)).
		Str("participant", string(participantID)).Int("occupants", len(r.occupants)).
		Msg("joined room")
	return nil
}

// LeaveRoom removes an occupant. Absent occupants are a no-op, not an
// error: disconnect races make double-leaves ordinary.
func (h *Hub) LeaveRoom(sid core.SessionID, code domain.RoomCode, participantID domain.ParticipantID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := h.conns[sid]
	h.leaveLocked(c, code, participantID)
}

// leaveLocked is the shared leave path for explicit leaves, disconnects
// and room switches. c may be nil when the session is already gone.
func (h *Hub) leaveLocked(c *conn, code domain.RoomCode, participantID domain.ParticipantID) {
	if code == "" || participantID == "" {
		return
	}
	r, ok := h.rooms[code]
	if !ok {
		return
	}
	occ, ok := r.occupants[participantID]
	if !ok {
		return
	}
	delete(r.occupants, participantID)
	if c != nil && c.roomCode == code {
		c.roomCode = ""
		c.participantID = ""
	}

	if len(r.occupants) == 0 {
		delete(h.rooms, code)
		h.metrics.ActiveRooms.Dec()
		log.Info().Str("module", "app.rooms").Str("room", string(code)).Msg("room empty, removed")
		return
	}

	username := occ.username
	if username == "" {
		username = domain.UnknownUsername
	}
	left := core.UserLeft{Type: core.MsgUserLeft, UserID: string(participantID), Username: username}
	for _, remaining := range r.occupants {
		if peerConn, ok := h.conns[remaining.sid]; ok {
			h.send(peerConn, left)
		}
	}
	log.Info().Str("module", "app.rooms").
		Str("room", string(code)).Str("participant", string(participantID)).
		Int("occupants", len(r.occupants)).Msg("left room")
}

// OccupantCount reports a room's size; 0 means the room does not exist.
func (h *Hub) OccupantCount(code domain.RoomCode) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[code]
	if !ok {
		return 0
	}
	return len(r.occupants)
}

// RoomExists reports whether a room currently has occupants.
func (h *Hub) RoomExists(code domain.RoomCode) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.rooms[code]
	return ok
}
