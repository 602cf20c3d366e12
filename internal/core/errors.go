package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeRoomNotFound  = "room_not_found"
	ErrCodeInvalidRole   = "invalid_role"
	ErrCodeAlreadyJoined = "already_joined"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrInvalidRole  = errors.New("invalid role")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
