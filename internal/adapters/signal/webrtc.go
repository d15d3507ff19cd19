package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
)

// handleRelay covers offer, answer and ice_candidate: store-and-forward
// of an opaque payload to a named destination. The payload travels in a
// kind-specific field ("offer"/"answer"/"candidate") and is never parsed.
func (ctl *SignalWSController) handleRelay(sid core.SessionID, kind string, data []byte) {
	type relayPayload struct {
		RecipientSocketID string          `json:"recipientSocketId" validate:"required"`
		Offer             json.RawMessage `json:"offer,omitempty"`
		Answer            json.RawMessage `json:"answer,omitempty"`
		Candidate         json.RawMessage `json:"candidate,omitempty"`
	}
	var p relayPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("kind", kind).Msg("bad relay payload")
		return
	}
	if err := validate.Struct(p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("kind", kind).Str("sid", string(sid)).Msg("relay missing recipient")
		return
	}

	var payload json.RawMessage
	switch core.SignalPayloadField(kind) {
	case "offer":
		payload = p.Offer
	case "answer":
		payload = p.Answer
	case "candidate":
		payload = p.Candidate
	}

	if err := ctl.Hub.RelaySignal(sid, kind, core.SessionID(p.RecipientSocketID), payload); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("kind", kind).Str("sid", string(sid)).Msg("relay dropped")
	}
}
