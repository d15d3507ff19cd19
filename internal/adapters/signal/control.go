package signal

import "github.com/rvasily/Beacon/internal/core"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: core.MsgPong,
	}
	ctl.sendJSON(conn, resp)
}
