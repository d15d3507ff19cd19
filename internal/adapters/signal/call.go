package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

func (ctl *SignalWSController) handleInitiateCall(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type initiatePayload struct {
		CallID              string `json:"callId" validate:"required"`
		CallerUsername      string `json:"callerUsername" validate:"required"`
		CallerChatUserID    string `json:"callerChatUserId" validate:"required"`
		RecipientChatUserID string `json:"recipientChatUserId" validate:"required"`
	}
	var p initiatePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad initiate payload")
		ctl.sendJSON(conn, core.ErrorMessage{Type: core.MsgError, Error: "bad_payload"})
		return
	}
	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("initiate missing fields")
		ctl.sendJSON(conn, core.ErrorMessage{Type: core.MsgError, Error: "missing call fields"})
		return
	}

	err := ctl.Hub.InitiateCall(
		sid,
		p.CallID,
		p.CallerUsername,
		domain.ChatUserID(p.CallerChatUserID),
		domain.ChatUserID(p.RecipientChatUserID),
	)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("call_id", p.CallID).Msg("initiate call")
	}
}

func (ctl *SignalWSController) handleAcceptCall(sid core.SessionID, data []byte) {
	type acceptPayload struct {
		RecipientSocketID string `json:"recipientSocketId" validate:"required"`
		AcceptorUsername  string `json:"acceptorUsername" validate:"required"`
	}
	var p acceptPayload
	if !decodeCallResponse(sid, data, "accept", &p) {
		return
	}
	ctl.Hub.AcceptCall(core.SessionID(p.RecipientSocketID), p.AcceptorUsername)
}

func (ctl *SignalWSController) handleRejectCall(sid core.SessionID, data []byte) {
	type rejectPayload struct {
		CallerSocketID   string `json:"callerSocketId" validate:"required"`
		RejecterUsername string `json:"rejecterUsername" validate:"required"`
	}
	var p rejectPayload
	if !decodeCallResponse(sid, data, "reject", &p) {
		return
	}
	ctl.Hub.RejectCall(core.SessionID(p.CallerSocketID), p.RejecterUsername)
}

func (ctl *SignalWSController) handleCancelCall(sid core.SessionID, data []byte) {
	type cancelPayload struct {
		RecipientSocketID string `json:"recipientSocketId" validate:"required"`
		CancellerUsername string `json:"cancellerUsername" validate:"required"`
	}
	var p cancelPayload
	if !decodeCallResponse(sid, data, "cancel", &p) {
		return
	}
	ctl.Hub.CancelCall(core.SessionID(p.RecipientSocketID), p.CancellerUsername)
}

// decodeCallResponse parses and validates one of the three handshake
// responses. Failures are logged and dropped: the sender of a stale
// response has nothing useful to do with an error.
func decodeCallResponse(sid core.SessionID, data []byte, op string, p any) bool {
	if err := json.Unmarshal(data, p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("op", op).Msg("bad call response payload")
		return false
	}
	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("op", op).Str("sid", string(sid)).Msg("call response missing fields")
		return false
	}
	return true
}
