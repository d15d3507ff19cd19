package core

import "errors"

var (
	// ErrValidation covers any required field that arrived empty.
	ErrValidation = errors.New("validation failed")
	// ErrRoomFull is returned when a call room already holds two occupants.
	ErrRoomFull = errors.New("room full")
	// ErrNotFound is returned when a target identity or connection is no
	// longer live. Usually a normal outcome, not a fault.
	ErrNotFound = errors.New("not found")
	// ErrBackpressure is returned by TrySend when the outbound buffer is full.
	ErrBackpressure = errors.New("backpressure")
)
