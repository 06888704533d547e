package game

import "errors"

// Recoverable rule violations, reported only to the offending connection as
// an error frame. The strings are sent to clients verbatim, so they are
// phrased as user-facing messages rather than Go error conventions.
var (
	ErrRoomInProgress       = errors.New("Game already in progress")
	ErrRoomFull             = errors.New("Room is full (5/5)")
	ErrKillerAlreadyClaimed = errors.New("Killer already claimed")
	ErrNotHost              = errors.New("Only the host can start")
	ErrInsufficientPlayers  = errors.New("Need at least 2 players")
	ErrNoClassSelected      = errors.New("Pick a class first")
)
