package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

func (ctl *SignalWSController) handleRegisterIdentity(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type registerPayload struct {
		ChatUserID string `json:"chatUserId" validate:"required"`
		Username   string `json:"username" validate:"required"`
	}
	var p registerPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad register payload")
		ctl.sendJSON(conn, core.ErrorMessage{Type: core.MsgError, Error: "bad_payload"})
		return
	}
	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("register missing fields")
		ctl.sendJSON(conn, core.ErrorMessage{Type: core.MsgError, Error: "missing chatUserId or username"})
		return
	}

	if err := ctl.Hub.RegisterIdentity(sid, domain.ChatUserID(p.ChatUserID), p.Username); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("register identity")
	}
}
