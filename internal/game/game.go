// Package game implements the room/session state machine for the Camp Blood
// coordinator: the player and room data model, the code-keyed room registry,
// and the game lifecycle (role assignment, win conditions, reset).
package game

// Phase is a room's current stage in the session cycle.
type Phase string

const (
	PhaseLobby       Phase = "lobby"
	PhaseClassSelect Phase = "class_select"
	PhaseGame        Phase = "game"
	PhasePost        Phase = "post"
)

// Role is a player's assigned game role. The zero value means unassigned.
type Role string

const (
	RoleNone     Role = ""
	RoleKiller   Role = "killer"
	RoleSurvivor Role = "survivor"
)

// Winner values broadcast in the game_over message.
const (
	WinnerKiller    = "killer"
	WinnerSurvivors = "survivors"
)

// Hit tiers. A player moves up one tier per hit and down one per heal;
// HitEscaped is terminal and set only by a successful escape.
const (
	HitHealthy = 0
	HitDead    = 3
	HitEscaped = 4
)

// Session limits.
const (
	MaxPlayers        = 5
	MinPlayersToStart = 2
	MaxNameLen        = 20
	MaxChatLen        = 80
	RoomCodeLen       = 4
	PlayerIDLen       = 8
)

// ClampText truncates s to at most max runes.
func ClampText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
