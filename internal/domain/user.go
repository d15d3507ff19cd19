// Package domain contains entity types without logic, just meta-data
package domain

import "errors"

const (
	MaxChatUserIDLen = 64
	MaxUsernameLen   = 64
)

var (
	ErrUsernameEmpty   = errors.New("username empty")
	ErrUsernameTooLong = errors.New("username too long")
)

// ChatUserID is the stable account-level id a client registers under.
// It outlives any single socket connection.
type ChatUserID string

// UnknownUsername is the display fallback for connections that never
// registered a username. Read paths only; the write path rejects empties.
const UnknownUsername = "Unknown"

// CheckUsername validates a display name before it is stored.
func CheckUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}
