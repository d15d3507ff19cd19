package signal

import (
	"encoding/json"
	"testing"

	"github.com/rvasily/Beacon/internal/app"
	"github.com/rvasily/Beacon/internal/core"
)

func newTestController() *SignalWSController {
	hub := app.NewHub(nil, app.NewMetrics(nil))
	return NewSignalWSController(hub, nil, 0, 0)
}

// testConn builds a WsSignalConn without a live websocket. Only the
// send channel is exercised; Close must not be called on it.
func testConn() *WsSignalConn {
	return &WsSignalConn{send: make(chan core.Frame, 32)}
}

func drain(t *testing.T, c *WsSignalConn) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case fr := <-c.send:
			var m map[string]any
			if err := json.Unmarshal(fr, &m); err != nil {
				t.Fatalf("unmarshal %q: %v", fr, err)
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func lastOfType(t *testing.T, msgs []map[string]any, typ string) map[string]any {
	t.Helper()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i]["type"] == typ {
			return msgs[i]
		}
	}
	t.Fatalf("no %q in %v", typ, msgs)
	return nil
}

func TestHandleSignalBadJSON(t *testing.T) {
	ctl := newTestController()
	c := testConn()
	ctl.handleSignal("s1", c, []byte("{nope"))
	msgs := drain(t, c)
	if got := lastOfType(t, msgs, core.MsgError)["error"]; got != "bad_payload" {
		t.Fatalf("error=%v, want bad_payload", got)
	}
}

func TestHandleSignalUnknownTypeIgnored(t *testing.T) {
	ctl := newTestController()
	c := testConn()
	ctl.handleSignal("s1", c, []byte(`{"type":"mystery"}`))
	if msgs := drain(t, c); len(msgs) != 0 {
		t.Fatalf("unknown type produced %v", msgs)
	}
}

func TestHandleSignalPing(t *testing.T) {
	ctl := newTestController()
	c := testConn()
	ctl.handleSignal("s1", c, []byte(`{"type":"ping"}`))
	lastOfType(t, drain(t, c), core.MsgPong)
}

func TestHandleSignalRegisterValidation(t *testing.T) {
	ctl := newTestController()
	c := testConn()
	ctl.Hub.Connect("s1", c)

	ctl.handleSignal("s1", c, []byte(`{"type":"register_identity","chatUserId":"alice"}`))
	msgs := drain(t, c)
	if got := lastOfType(t, msgs, core.MsgError)["error"]; got != "missing chatUserId or username" {
		t.Fatalf("error=%v", got)
	}

	ctl.handleSignal("s1", c, []byte(`{"type":"register_identity","chatUserId":"alice","username":"Alice"}`))
	msgs = drain(t, c)
	if got := lastOfType(t, msgs, core.MsgRegistered)["socketId"]; got != "s1" {
		t.Fatalf("registered socketId=%v, want s1", got)
	}
}

func TestHandleSignalJoinMissingFields(t *testing.T) {
	ctl := newTestController()
	c := testConn()
	ctl.Hub.Connect("s1", c)

	ctl.handleSignal("s1", c, []byte(`{"type":"join_room","roomCode":"r1"}`))
	msgs := drain(t, c)
	if got := lastOfType(t, msgs, core.MsgJoinFailed)["message"]; got != "Missing roomCode, userId, or username." {
		t.Fatalf("join_failed message=%v", got)
	}
	if ctl.Hub.RoomExists("r1") {
		t.Fatal("failed join created a room")
	}
}

func TestHandleSignalEndToEndRelay(t *testing.T) {
	ctl := newTestController()
	a := testConn()
	b := testConn()
	ctl.Hub.Connect("A", a)
	ctl.Hub.Connect("B", b)

	ctl.handleSignal("A", a, []byte(`{"type":"join_room","roomCode":"r1","userId":"pa","username":"Alice"}`))
	ctl.handleSignal("B", b, []byte(`{"type":"join_room","roomCode":"r1","userId":"pb","username":"Bob"}`))

	joined := lastOfType(t, drain(t, b), core.MsgRoomJoined)
	peers := joined["peers"].([]any)
	if len(peers) != 1 || peers[0].(map[string]any)["socketId"] != "A" {
		t.Fatalf("peers=%v", peers)
	}

	ctl.handleSignal("A", a, []byte(`{"type":"offer","recipientSocketId":"B","offer":{"sdp":"v=0"}}`))
	fwd := lastOfType(t, drain(t, b), core.SignalOffer)
	if fwd["senderSocketId"] != "A" || fwd["offer"].(map[string]any)["sdp"] != "v=0" {
		t.Fatalf("forwarded offer=%v", fwd)
	}

	// Candidate payload travels under "candidate".
	ctl.handleSignal("B", b, []byte(`{"type":"ice_candidate","recipientSocketId":"A","candidate":{"sdpMid":"0"}}`))
	cand := lastOfType(t, drain(t, a), core.SignalICECandidate)
	if cand["candidate"].(map[string]any)["sdpMid"] != "0" {
		t.Fatalf("forwarded candidate=%v", cand)
	}
}
