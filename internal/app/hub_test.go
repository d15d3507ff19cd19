package app

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rvasily/Beacon/internal/core"
	"github.com/rvasily/Beacon/internal/domain"
)

// fakeSignal captures outbound frames in memory.
type fakeSignal struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func (f *fakeSignal) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.full {
		return core.ErrBackpressure
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeSignal) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeSignal) messages(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		if err := json.Unmarshal(fr, &m); err != nil {
			t.Fatalf("unmarshal frame %q: %v", fr, err)
		}
		out = append(out, m)
	}
	return out
}

func (f *fakeSignal) byType(t *testing.T, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, m := range f.messages(t) {
		if m["type"] == typ {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeSignal) lastOfType(t *testing.T, typ string) map[string]any {
	t.Helper()
	msgs := f.byType(t, typ)
	if len(msgs) == 0 {
		t.Fatalf("no %q message, got %v", typ, f.messages(t))
	}
	return msgs[len(msgs)-1]
}

func newTestHub() *Hub {
	return NewHub(SimplePolicy{}, NewMetrics(nil))
}

func connect(h *Hub, sid core.SessionID) *fakeSignal {
	f := &fakeSignal{}
	h.Connect(sid, f)
	return f
}

func mustJoin(t *testing.T, h *Hub, sid core.SessionID, code, pid, name string) {
	t.Helper()
	err := h.JoinRoom(sid, domain.RoomCode(code), domain.ParticipantID(pid), name, domain.RoomKindCall)
	if err != nil {
		t.Fatalf("JoinRoom(%s, %s): %v", sid, code, err)
	}
}

func TestConnectDisconnectCounts(t *testing.T) {
	h := newTestHub()
	connect(h, "s1")
	connect(h, "s2")
	if got := h.ConnectionCount(); got != 2 {
		t.Fatalf("ConnectionCount=%d, want 2", got)
	}
	h.Disconnect("s1")
	h.Disconnect("s1") // idempotent
	if got := h.ConnectionCount(); got != 1 {
		t.Fatalf("ConnectionCount=%d, want 1", got)
	}
}

func TestBackpressureKickPolicyClosesConnection(t *testing.T) {
	h := NewHub(kickPolicy{}, NewMetrics(nil))
	connect(h, "a")
	b := connect(h, "b")
	b.full = true
	mustJoin(t, h, "a", "r1", "p-a", "alice")
	// b's room_joined answer cannot be buffered; the kick policy must
	// close the slow connection.
	_ = h.JoinRoom("b", "r1", "p-b", "bob", domain.RoomKindCall)
	if !b.closed {
		t.Fatal("slow connection not closed under kick policy")
	}
}

type kickPolicy struct{}

func (kickPolicy) OnBackPressure(core.SessionID) BackpressureAction { return KickMember }

// End-to-end scenario: register, ring, accept, join, relay, disconnect.
func TestCallScenario(t *testing.T) {
	h := newTestHub()
	a := connect(h, "A")
	b := connect(h, "B")

	if err := h.RegisterIdentity("A", "alice", "Alice"); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if err := h.RegisterIdentity("B", "bob", "Bob"); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if err := h.InitiateCall("A", "c1", "Alice", "alice", "bob"); err != nil {
		t.Fatalf("initiate: %v", err)
	}
	ring := b.lastOfType(t, core.MsgIncomingCall)
	if ring["callId"] != "c1" || ring["callerSocketId"] != "A" || ring["callerChatUserId"] != "alice" {
		t.Fatalf("incoming_call = %v", ring)
	}

	h.AcceptCall("A", "Bob")
	if got := a.lastOfType(t, core.MsgCallAccepted)["acceptorUsername"]; got != "Bob" {
		t.Fatalf("acceptorUsername=%v, want Bob", got)
	}

	mustJoin(t, h, "A", "c1", "pa", "Alice")
	aJoined := a.lastOfType(t, core.MsgRoomJoined)
	if peers := aJoined["peers"].([]any); len(peers) != 0 {
		t.Fatalf("first joiner peers=%v, want empty", peers)
	}

	mustJoin(t, h, "B", "c1", "pb", "Bob")
	bJoined := b.lastOfType(t, core.MsgRoomJoined)
	peers := bJoined["peers"].([]any)
	if len(peers) != 1 {
		t.Fatalf("second joiner peers=%v, want 1", peers)
	}
	peer := peers[0].(map[string]any)
	if peer["userId"] != "pa" || peer["socketId"] != "A" {
		t.Fatalf("peer=%v", peer)
	}
	if got := a.lastOfType(t, core.MsgUserJoined)["userId"]; got != "pb" {
		t.Fatalf("user_joined userId=%v, want pb", got)
	}

	payload := json.RawMessage(`{"sdp":"v=0"}`)
	if err := h.RelaySignal("A", core.SignalOffer, "B", payload); err != nil {
		t.Fatalf("relay offer: %v", err)
	}
	fwd := b.lastOfType(t, core.SignalOffer)
	if fwd["senderSocketId"] != "A" {
		t.Fatalf("senderSocketId=%v, want A", fwd["senderSocketId"])
	}
	if fwd["offer"].(map[string]any)["sdp"] != "v=0" {
		t.Fatalf("offer payload=%v", fwd["offer"])
	}

	h.Disconnect("B")
	left := a.lastOfType(t, core.MsgUserLeft)
	if left["userId"] != "pb" {
		t.Fatalf("user_left userId=%v, want pb", left["userId"])
	}
	if got := h.OccupantCount("c1"); got != 1 {
		t.Fatalf("occupants=%d, want 1 after B disconnect", got)
	}

	h.Disconnect("A")
	if h.RoomExists("c1") {
		t.Fatal("room c1 should be removed once empty")
	}
}
