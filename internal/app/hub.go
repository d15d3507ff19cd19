package app

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

// conn is the registry entry for one live transport session.
type conn struct {
	sid      core.SessionID
	signal   core.SignalConnection
	username string

	chatUserID domain.ChatUserID

	// back-reference for disconnect cleanup; the room owns the occupant set
	roomCode      domain.RoomCode
	participantID domain.ParticipantID
}

type occupant struct {
	sid        core.SessionID
	username   string
	chatUserID domain.ChatUserID
}

type room struct {
	code      domain.RoomCode
	kind      domain.RoomKind
	occupants map[domain.ParticipantID]*occupant
}

// Hub owns the connection registry, the identity directory and the room
// set. All three live behind a single mutex: a join touches all of them,
// and disconnect cleanup must be atomic with respect to concurrent
// joins and leaves on the same room or identity.
type Hub struct {
	mu         sync.Mutex
	conns      map[core.SessionID]*conn
	identities map[domain.ChatUserID]core.SessionID
	rooms      map[domain.RoomCode]*room

	policy  Policy
	metrics *Metrics
}

func NewHub(policy Policy, metrics *Metrics) *Hub {
	if policy == nil {
		policy = SimplePolicy{}
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Hub{
		conns:      make(map[core.SessionID]*conn),
		identities: make(map[domain.ChatUserID]core.SessionID),
		rooms:      make(map[domain.RoomCode]*room),
		policy:     policy,
		metrics:    metrics,
	}
}

// Connect allocates a registry entry for a fresh transport session.
func (h *Hub) Connect(sid core.SessionID, signal core.SignalConnection) {
	h.mu.Lock()
	h.conns[sid] = &conn{sid: sid, signal: signal}
	h.mu.Unlock()
	h.metrics.ActiveConnections.Inc()
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("connected")
}

// Disconnect tears a session down: room leave with peer notification,
// identity unbind (only if this session still owns the binding), and
// registry removal. Runs as one critical section so a concurrent join
// cannot observe a half-removed occupant or resurrect an emptied room.
func (h *Hub) Disconnect(sid core.SessionID) {
	h.mu.Lock()
	c, ok := h.conns[sid]
	if !ok {
		h.mu.Unlock()
		return
	}
	h.leaveLocked(c, c.roomCode, c.participantID)
	if c.chatUserID != "" {
		if owner, ok := h.identities[c.chatUserID]; ok && owner == sid {
			delete(h.identities, c.chatUserID)
		}
	}
	delete(h.conns, sid)
	h.mu.Unlock()
	h.metrics.ActiveConnections.Dec()
	log.Info().Str("module", "app.hub").Str("sid", string(sid)).Msg("disconnected")
}

// ConnectionCount reports live sessions, for the health surface.
func (h *Hub) ConnectionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// RoomCount reports rooms with at least one occupant.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// send marshals and fire-and-forwards one message. Callers may hold the
// hub mutex: TrySend never blocks. On backpressure the policy decides
// between dropping the frame and closing the slow connection; closing
// lets the transport run the normal disconnect path.
func (h *Hub) send(c *conn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.hub").Msg("send marshal")
		return
	}
	if err := c.signal.TrySend(core.Frame(b)); err != nil {
		h.metrics.SendsDropped.Inc()
		switch h.policy.OnBackPressure(c.sid) {
		case KickMember:
			log.Warn().Str("module", "app.hub").Str("sid", string(c.sid)).Msg("slow consumer, closing")
			c.signal.Close()
		case DropFrame, NoAction:
			log.Debug().Str("module", "app.hub").Str("sid", string(c.sid)).Msg("dropped frame on backpressure")
		}
	}
}

// sendError reports a rejected request back to its sender.
func (h *Hub) sendError(c *conn, reason string) {
	h.send(c, core.ErrorMessage{Type: core.MsgError, Error: reason})
}
