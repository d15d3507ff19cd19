package domain

type (
	// RoomCode is the caller-chosen call id a room is keyed by.
	RoomCode string

	// ParticipantID is the caller-supplied per-call id of an occupant.
	// Distinct from ChatUserID: an identity may pick a different
	// participant id for every call.
	ParticipantID string
)

// RoomKind decides whether the two-occupant cap applies.
// The kind is fixed by the first joiner and never inferred from the code.
type RoomKind int

const (
	// RoomKindCall is a 1:1 call room, capacity 2.
	RoomKindCall RoomKind = iota
	// RoomKindLobby is a staging room without a capacity cap.
	RoomKindLobby
)

// CallRoomCapacity is the occupant cap for RoomKindCall rooms.
const CallRoomCapacity = 2

func (k RoomKind) String() string {
	if k == RoomKindLobby {
		return "lobby"
	}
	return "call"
}

// ParseRoomKind maps the wire value to a kind. Anything but "lobby"
// is a call room.
func ParseRoomKind(s string) RoomKind {
	if s == "lobby" {
		return RoomKindLobby
	}
	return RoomKindCall
}
