package game

import "time"

// Conn is the write side of one participant's transport channel. Each Player
// owns exactly one Conn; it is never shared between players.
//
// Send is fire-and-forget: implementations must swallow delivery failures on
// a closed connection rather than surface them to game logic.
type Conn interface {
	Send(v any) error
	Close() error
}

// Task is a handle to a scheduled deferred action. Cancel prevents the
// action from running if it has not run yet; it is safe to call after the
// action ran.
type Task interface {
	Cancel()
}

// Scheduler defers a function to run as its own turn on the coordinator
// loop after the given delay.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}
