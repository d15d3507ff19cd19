package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

// InitiateCall routes a call invitation to the recipient identity's
// live connection. An offline recipient is a normal outcome answered
// with recipient_offline, not an error.
func (h *Hub) InitiateCall(
	sid core.SessionID,
	callID string,
	callerUsername string,
	callerChatUserID domain.ChatUserID,
	recipientChatUserID domain.ChatUserID,
) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.conns[sid]
	if !ok {
		return fmt.Errorf("initiate_call %s: %w", sid, core.ErrNotFound)
	}
	if callID == "" || callerUsername == "" || callerChatUserID == "" || recipientChatUserID == "" {
		h.metrics.CallsInitiated.WithLabelValues("invalid").Inc()
		h.sendError(c, "missing call fields")
		return fmt.Errorf("initiate_call: missing field: %w", core.ErrValidation)
	}

	recipient, ok := h.resolveLocked(recipientChatUserID)
	if !ok {
		h.metrics.CallsInitiated.WithLabelValues("offline").Inc()
		h.send(c, core.RecipientOffline{Type: core.MsgRecipientOffline, RecipientID: string(recipientChatUserID)})
		log.Info().Str("module", "app.calls").
			Str("call_id", callID).Str("recipient", string(recipientChatUserID)).
			Msg("recipient offline")
		return nil
	}

	h.metrics.CallsInitiated.WithLabelValues("delivered").Inc()
	h.send(recipient, core.IncomingCall{
		Type:             core.MsgIncomingCall,
		CallID:           callID,
		CallerUsername:   callerUsername,
		CallerChatUserID: string(callerChatUserID),
		CallerSocketID:   string(sid),
	})
	log.Info().Str("module", "app.calls").
		Str("call_id", callID).Str("caller_sid", string(sid)).
		Str("recipient_sid", string(recipient.sid)).Msg("call invitation delivered")
	return nil
}

// AcceptCall forwards acceptance to the initiator. A vanished initiator
// (disconnected mid-ring) is logged and dropped.
func (h *Hub) AcceptCall(initiator core.SessionID, acceptorUsername string) {
	h.forwardCallResponse(initiator, core.CallAccepted{
		Type:             core.MsgCallAccepted,
		AcceptorUsername: acceptorUsername,
	}, "accept_call")
}

// RejectCall forwards rejection to the initiator.
func (h *Hub) RejectCall(initiator core.SessionID, rejecterUsername string) {
	h.forwardCallResponse(initiator, core.CallRejected{
		Type:             core.MsgCallRejected,
		RejecterUsername: rejecterUsername,
	}, "reject_call")
}

// CancelCall forwards cancellation to the invited recipient.
func (h *Hub) CancelCall(recipient core.SessionID, cancellerUsername string) {
	h.forwardCallResponse(recipient, core.CallCancelled{
		Type:              core.MsgCallCancelled,
		CancellerUsername: cancellerUsername,
	}, "cancel_call")
}

// forwardCallResponse is the shared fire-and-forget path for the three
// handshake responses. No call state is tracked: duplicates and late
// arrivals are forwarded as-is and clients must tolerate them.
func (h *Hub) forwardCallResponse(target core.SessionID, msg any, op string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.conns[target]
	if !ok {
		log.Info().Str("module", "app.calls").Str("op", op).Str("target", string(target)).Msg("counterpart gone, dropped")
		return
	}
	h.send(c, msg)
}
