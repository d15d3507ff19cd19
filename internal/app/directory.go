package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

// RegisterIdentity binds a stable chat user id to this session and
// stores the display name on the registry entry. Registering the same
// identity from a new connection silently supersedes the old binding;
// the displaced connection gets no notice. The caller receives an
// explicit ack, or an error message when a field is missing.
func (h *Hub) RegisterIdentity(sid core.SessionID, chatUserID domain.ChatUserID, username string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[sid]
	if !ok {
		return fmt.Errorf("register_identity %s: %w", sid, core.ErrNotFound)
	}
	if chatUserID == "" || len(chatUserID) > domain.MaxChatUserIDLen {
		h.sendError(c, "missing or invalid chatUserId")
		return fmt.Errorf("register_identity: chatUserId: %w", core.ErrValidation)
	}
	if err := domain.CheckUsername(username); err != nil {
		h.sendError(c, "missing or invalid username")
		return fmt.Errorf("register_identity: %v: %w", err, core.ErrValidation)
	}

	if prev, ok := h.identities[chatUserID]; ok && prev != sid {
		log.Info().Str("module", "app.directory").
			Str("chat_user_id", string(chatUserID)).
			Str("old_sid", string(prev)).Str("new_sid", string(sid)).
			Msg("identity binding superseded")
	}
	h.identities[chatUserID] = sid
	c.chatUserID = chatUserID
	c.username = username

	h.send(c, core.Registered{Type: core.MsgRegistered, SocketID: string(sid)})
	log.Info().Str("module", "app.directory").
		Str("sid", string(sid)).Str("chat_user_id", string(chatUserID)).
		Str("username", username).Msg("identity registered")
	return nil
}

// resolveLocked maps a chat user id to its live connection.
func (h *Hub) resolveLocked(chatUserID domain.ChatUserID) (*conn, bool) {
	sid, ok := h.identities[chatUserID]
	if !ok {
		return nil, false
	}
	c, ok := h.conns[sid]
	return c, ok
}

// ResolveIdentity reports the session currently bound to an identity.
func (h *Hub) ResolveIdentity(chatUserID domain.ChatUserID) (core.SessionID, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.resolveLocked(chatUserID)
	if !ok {
		return "", false
	}
	return c.sid, true
}
