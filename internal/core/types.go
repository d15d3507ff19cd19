package core

// Frame is a raw wire payload (one JSON-encoded message).
type Frame []byte

// SessionID is the opaque handle of one live transport session.
// Freshly allocated per connection, never reused across reconnects.
type SessionID string

// SignalConnection abstracts the system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
