package core

import "encoding/json"

// Outbound message types.
const (
	MsgRoomJoined       = "room_joined"
	MsgUserJoined       = "user_joined"
	MsgUserLeft         = "user_left"
	MsgRoomFull         = "room_full"
	MsgJoinFailed       = "join_failed"
	MsgIncomingCall     = "incoming_call"
	MsgRecipientOffline = "recipient_offline"
	MsgCallAccepted     = "call_accepted"
	MsgCallRejected     = "call_rejected"
	MsgCallCancelled    = "call_cancelled"
	MsgRegistered       = "registered"
	MsgError            = "error"
	MsgPong             = "pong"
)

// Relayed signal kinds. The wire type and the inbound event name coincide.
const (
	SignalOffer        = "offer"
	SignalAnswer       = "answer"
	SignalICECandidate = "ice_candidate"
)

// PeerInfo is the read-only occupant view shipped in room notifications.
type PeerInfo struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	SocketID string `json:"socketId"`
}

type RoomJoined struct {
	Type     string     `json:"type"`
	RoomCode string     `json:"roomCode"`
	Peers    []PeerInfo `json:"peers"`
}

type UserJoined struct {
	Type       string `json:"type"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	SocketID   string `json:"socketId"`
	ChatUserID string `json:"chatUserId,omitempty"`
}

type UserLeft struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Notice carries room_full and join_failed rejections.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type IncomingCall struct {
	Type             string `json:"type"`
	CallID           string `json:"callId"`
	CallerUsername   string `json:"callerUsername"`
	CallerChatUserID string `json:"callerChatUserId"`
	CallerSocketID   string `json:"callerSocketId"`
}

type RecipientOffline struct {
	Type        string `json:"type"`
	RecipientID string `json:"recipientId"`
}

type CallAccepted struct {
	Type             string `json:"type"`
	AcceptorUsername string `json:"acceptorUsername"`
}

type CallRejected struct {
	Type             string `json:"type"`
	RejecterUsername string `json:"rejecterUsername"`
}

type CallCancelled struct {
	Type              string `json:"type"`
	CancellerUsername string `json:"cancellerUsername"`
}

type Registered struct {
	Type     string `json:"type"`
	SocketID string `json:"socketId"`
}

type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// SignalPayloadField returns the JSON field a relayed payload travels in.
// Field names match the original wire format: offers under "offer",
// answers under "answer", ICE candidates under "candidate".
func SignalPayloadField(kind string) string {
	if kind == SignalICECandidate {
		return "candidate"
	}
	return kind
}

// SignalForward builds the store-and-forward envelope for offer, answer
// and ice_candidate messages. The payload is passed through verbatim.
func SignalForward(kind string, sender SessionID, payload json.RawMessage) map[string]any {
	m := map[string]any{
		"type":           kind,
		"senderSocketId": string(sender),
	}
	m[SignalPayloadField(kind)] = payload
	return m
}
