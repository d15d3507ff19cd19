package app

import "github.com/rvasily/Beacon/internal/core"

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	DropFrame
	KickMember
)

// Policy decides what happens to a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(sid core.SessionID) BackpressureAction
}

// SimplePolicy drops the frame. Signaling traffic is sparse; a full
// buffer here means a stalled client, and control messages are safe to
// lose because peers re-negotiate.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(core.SessionID) BackpressureAction {
	return DropFrame
}
