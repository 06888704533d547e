package game

import "github.com/campblood/server/internal/protocol"

// Player is one connected participant's session record and mutable gameplay
// state. All mutation happens on the coordinator loop.
type Player struct {
	// ID is assigned at join and immutable for the connection's lifetime.
	ID string
	// Name is the display name, clamped to MaxNameLen at join.
	Name string
	// Conn is the exclusively owned transport write handle.
	Conn Conn

	// Class is the selected class; empty until chosen.
	Class string
	// Role is assigned once per game at start; empty outside a game cycle.
	Role Role
	// Locked reports whether the class selection is committed.
	Locked bool
	// ReadyInLobby is the lobby ready toggle.
	ReadyInLobby bool
	// HitState is the damage tier in [0,4]: 0 healthy, 1-2 injured,
	// 3 dead, 4 escaped.
	HitState int

	// IsGA and GATarget track the guardian-angel sub-role.
	IsGA     bool
	GATarget string

	// Last client-reported position and orientation; relayed, not validated.
	X, Y, Z, Yaw float64

	// Escaped is terminal once true.
	Escaped bool
}

// NewPlayer creates a Player with lobby-initial state. An empty name
// defaults to "Player"; names are clamped to MaxNameLen runes.
//
// Precondition: id must be non-empty; conn must be non-nil.
func NewPlayer(id, name string, conn Conn) *Player {
	if name == "" {
		name = "Player"
	}
	return &Player{
		ID:   id,
		Name: ClampText(name, MaxNameLen),
		Conn: conn,
	}
}

// ApplyHit advances the hit tier by one, clamped at HitDead, and returns the
// new tier.
//
// Postcondition: HitState is unchanged or incremented; never exceeds HitDead.
func (p *Player) ApplyHit() int {
	if p.HitState < HitDead {
		p.HitState++
	} else if p.HitState > HitDead {
		// Escaped players stay escaped.
		return p.HitState
	}
	return p.HitState
}

// ApplyHeal lowers the hit tier by one, floored at HitHealthy, and returns
// the new tier.
//
// Postcondition: HitState is unchanged or decremented; never below HitHealthy.
func (p *Player) ApplyHeal() int {
	if p.HitState > HitHealthy {
		p.HitState--
	}
	return p.HitState
}

// Dead reports whether the player has reached the dead tier.
func (p *Player) Dead() bool {
	return p.HitState >= HitDead && !p.Escaped
}

// ResetGameState restores every per-game field to its initial value,
// preserving id, name, and connection.
func (p *Player) ResetGameState() {
	p.Class = ""
	p.Role = RoleNone
	p.Locked = false
	p.ReadyInLobby = false
	p.HitState = HitHealthy
	p.IsGA = false
	p.GATarget = ""
	p.Escaped = false
}

// Info returns the roster snapshot of this player.
func (p *Player) Info() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:           p.ID,
		Name:         p.Name,
		Class:        p.Class,
		Role:         string(p.Role),
		Locked:       p.Locked,
		ReadyInLobby: p.ReadyInLobby,
		HitState:     p.HitState,
		IsGA:         p.IsGA,
		GATarget:     p.GATarget,
		Escaped:      p.Escaped,
	}
}

// Stats returns the end-of-game summary entry for this player.
func (p *Player) Stats() protocol.PlayerStats {
	return protocol.PlayerStats{
		ID:       p.ID,
		Name:     p.Name,
		Role:     string(p.Role),
		Class:    p.Class,
		Escaped:  p.Escaped,
		HitState: p.HitState,
	}
}
