package game

import "github.com/campblood/server/internal/protocol"

// Room is one isolated game session: a bounded roster of players plus the
// phase state machine and its deferred-task bookkeeping.
//
// HostID and ClaimedKillerID are back-references into the roster, never
// owning pointers; the Room owns its Players.
type Room struct {
	// Code is the room's unique lookup key, immutable.
	Code string
	// HostID is the id of the privileged player; empty only transiently
	// while the room is emptying.
	HostID string
	// ClaimedKillerID is the id of the player holding the killer claim,
	// or empty.
	ClaimedKillerID string
	// Phase is the current stage of the session cycle.
	Phase Phase

	players map[string]*Player
	order   []string // join order

	classUnlock Task
	lobbyReset  Task
}

// NewRoom creates an empty lobby-phase room.
func NewRoom(code string) *Room {
	return &Room{
		Code:    code,
		Phase:   PhaseLobby,
		players: make(map[string]*Player),
	}
}

// AddPlayer appends p to the roster. The first player becomes host.
//
// Precondition: p.ID must not already be in the roster.
// Postcondition: Returns ErrRoomFull and leaves the roster unchanged when
// the room already holds MaxPlayers.
func (r *Room) AddPlayer(p *Player) error {
	if len(r.order) >= MaxPlayers {
		return ErrRoomFull
	}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	if len(r.order) == 1 {
		r.HostID = p.ID
	}
	return nil
}

// RemovePlayer removes the player with the given id from the roster.
//
// Postcondition: Returns the removed player, or nil if the id was unknown.
// Host and killer-claim back-references are NOT adjusted here; disconnect
// handling owns that policy.
func (r *Room) RemovePlayer(id string) *Player {
	p, ok := r.players[id]
	if !ok {
		return nil
	}
	delete(r.players, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return p
}

// Player returns the roster entry for id.
func (r *Room) Player(id string) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Players returns the roster in join order.
func (r *Room) Players() []*Player {
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// PlayerCount returns the roster size.
func (r *Room) PlayerCount() int {
	return len(r.order)
}

// PlayerIDs returns the roster ids in join order.
func (r *Room) PlayerIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Survivors returns the players assigned the survivor role, in join order.
func (r *Room) Survivors() []*Player {
	var out []*Player
	for _, p := range r.Players() {
		if p.Role == RoleSurvivor {
			out = append(out, p)
		}
	}
	return out
}

// AllLocked reports whether every player has committed a class selection.
func (r *Room) AllLocked() bool {
	for _, p := range r.players {
		if !p.Locked {
			return false
		}
	}
	return true
}

// Snapshot returns the roster as wire-format player infos, in join order.
func (r *Room) Snapshot() []protocol.PlayerInfo {
	out := make([]protocol.PlayerInfo, 0, len(r.order))
	for _, p := range r.Players() {
		out = append(out, p.Info())
	}
	return out
}

// SetClassUnlock stores the pending class-unlock task, cancelling any
// previous one.
func (r *Room) SetClassUnlock(t Task) {
	if r.classUnlock != nil {
		r.classUnlock.Cancel()
	}
	r.classUnlock = t
}

// CancelClassUnlock cancels the pending class-unlock task, if any.
func (r *Room) CancelClassUnlock() {
	if r.classUnlock != nil {
		r.classUnlock.Cancel()
		r.classUnlock = nil
	}
}

// SetLobbyReset stores the pending post-game reset task, cancelling any
// previous one.
func (r *Room) SetLobbyReset(t Task) {
	if r.lobbyReset != nil {
		r.lobbyReset.Cancel()
	}
	r.lobbyReset = t
}

// CancelTasks cancels every pending deferred task. Called on room teardown
// so a destroyed room can never receive a stale broadcast.
func (r *Room) CancelTasks() {
	r.CancelClassUnlock()
	if r.lobbyReset != nil {
		r.lobbyReset.Cancel()
		r.lobbyReset = nil
	}
}
