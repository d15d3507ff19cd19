package app

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rvasily/Beacon/internal/core"
)

// RelaySignal forwards an opaque negotiation payload (offer, answer or
// ICE candidate) to the named destination connection. The payload is
// never inspected. Missing fields and stale destinations are dropped
// with a log line; the sender gets no response either way.
func (h *Hub) RelaySignal(sid core.SessionID, kind string, recipient core.SessionID, payload json.RawMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if recipient == "" || len(payload) == 0 {
		log.Warn().Str("module", "app.relay").Str("kind", kind).Str("sid", string(sid)).Msg("signal missing recipient or payload")
		return fmt.Errorf("relay %s: missing field: %w", kind, core.ErrValidation)
	}
	dst, ok := h.conns[recipient]
	if !ok {
		log.Info().Str("module", "app.relay").Str("kind", kind).Str("recipient", string(recipient)).Msg("signal recipient gone, dropped")
		return fmt.Errorf("relay %s to %s: %w", kind, recipient, core.ErrNotFound)
	}

	h.metrics.SignalsRelayed.WithLabelValues(kind).Inc()
	h.send(dst, core.SignalForward(kind, sid, payload))
	log.Debug().Str("module", "app.relay").
		Str("kind", kind).Str("from", string(sid)).Str("to", string(recipient)).
		Msg("signal relayed")
	return nil
}
