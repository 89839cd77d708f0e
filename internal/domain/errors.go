package domain

import "errors"

var (
	// ErrRoomNotFound is returned when an action names an unknown room.
	ErrRoomNotFound = errors.New("room not found")
	// ErrNotHost is returned when someone other than the host tries to start a room.
	ErrNotHost = errors.New("only the host can start the game")
	// ErrRoomFull is returned when a join would exceed the player cap.
	ErrRoomFull = errors.New("room full")
	// ErrInvalidPlayer marks actions from a connection that is not in the room.
	ErrInvalidPlayer = errors.New("player not in room")
	// ErrStaleQuestion marks answers or hints referencing a question no longer current.
	ErrStaleQuestion = errors.New("question no longer current")
	// ErrNoQuestions indicates the catalog has nothing left to serve.
	ErrNoQuestions = errors.New("no questions available")
	// ErrDirectoryUnavailable indicates the external user store is unreachable.
	ErrDirectoryUnavailable = errors.New("user directory unavailable")
	// ErrUserNotFound is returned for lookups of unknown identifiers.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when a signup reuses an identifier.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
