package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

func (ctl *SignalWSController) handleJoinRoom(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		RoomCode string `json:"roomCode" validate:"required"`
		UserID   string `json:"userId" validate:"required"`
		Username string `json:"username" validate:"required"`
		Kind     string `json:"kind,omitempty"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, core.ErrorMessage{Type: core.MsgError, Error: "bad_payload"})
		return
	}
	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("join missing fields")
		ctl.sendJSON(conn, core.Notice{Type: core.MsgJoinFailed, Message: "Missing roomCode, userId, or username."})
		return
	}

	err := ctl.Hub.JoinRoom(
		sid,
		domain.RoomCode(p.RoomCode),
		domain.ParticipantID(p.UserID),
		p.Username,
		domain.ParseRoomKind(p.Kind),
	)
	if err != nil {
		// The hub already answered the joiner (join_failed or room_full).
		log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomCode).Msg("join rejected")
	}
}

func (ctl *SignalWSController) handleLeaveRoom(sid core.SessionID, data []byte) {
	type leavePayload struct {
		RoomCode string `json:"roomCode" validate:"required"`
		UserID   string `json:"userId" validate:"required"`
	}
	var p leavePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		return
	}
	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("leave missing fields")
		return
	}

	ctl.Hub.LeaveRoom(sid, domain.RoomCode(p.RoomCode), domain.ParticipantID(p.UserID))
}
