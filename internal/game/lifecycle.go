package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/campblood/server/internal/game/spawn"
	"github.com/campblood/server/internal/protocol"
)

// Rules holds the configurable session timings.
type Rules struct {
	// ClassUnlockDelay is the delay from game start to the class_unlock
	// broadcast.
	ClassUnlockDelay time.Duration
	// LobbyResetDelay is the delay from game over to the lobby reset.
	LobbyResetDelay time.Duration
}

// DefaultRules returns the shipped timings: 210s class unlock, 30s reset.
func DefaultRules() Rules {
	return Rules{
		ClassUnlockDelay: 210 * time.Second,
		LobbyResetDelay:  30 * time.Second,
	}
}

// Lifecycle owns every phase transition of a room: game start, the win
// condition evaluators, game over, and the return to lobby. No other
// component mutates Room.Phase.
type Lifecycle struct {
	logger   *zap.Logger
	rules    Rules
	layout   spawn.Layout
	sched    Scheduler
	bcast    *Broadcaster
	registry *Registry
	ids      *IDSource
}

// NewLifecycle creates a Lifecycle.
//
// Precondition: all arguments must be non-nil; layout must be valid.
func NewLifecycle(logger *zap.Logger, rules Rules, layout spawn.Layout, sched Scheduler, bcast *Broadcaster, registry *Registry, ids *IDSource) *Lifecycle {
	return &Lifecycle{
		logger:   logger,
		rules:    rules,
		layout:   layout,
		sched:    sched,
		bcast:    bcast,
		registry: registry,
		ids:      ids,
	}
}

// Start handles the host's start request: assigns exactly one killer (the
// claimant if still present, else a uniform roster draw), makes everyone
// else a survivor, broadcasts the role map, and advances the room to class
// selection.
//
// Postcondition: On error the roster and phase are unchanged. On success
// every player has a role and Phase is PhaseClassSelect.
func (l *Lifecycle) Start(room *Room, callerID string) error {
	if callerID != room.HostID {
		return ErrNotHost
	}
	if room.PlayerCount() < MinPlayersToStart {
		return ErrInsufficientPlayers
	}
	if room.Phase != PhaseLobby {
		// start is only legal from the lobby; repeats are ignored.
		return nil
	}

	room.Phase = PhaseClassSelect

	ids := room.PlayerIDs()
	killerID := room.ClaimedKillerID
	if _, ok := room.Player(killerID); killerID == "" || !ok {
		killerID = ids[l.ids.Intn(len(ids))]
	}

	roles := make(map[string]string, len(ids))
	for _, id := range ids {
		p, _ := room.Player(id)
		if id == killerID {
			p.Role = RoleKiller
		} else {
			p.Role = RoleSurvivor
		}
		roles[id] = string(p.Role)
	}

	l.logger.Info("class selection started",
		zap.String("room", room.Code),
		zap.String("killer", killerID),
		zap.Int("players", len(ids)),
	)
	l.bcast.ToRoom(room, protocol.ClassSelectMsg{T: protocol.TClassSelect, Roles: roles})
	return nil
}

// BeginGame moves the room from class selection into the active game:
// computes spawns, broadcasts roles/classes/spawns together, and schedules
// the one-shot class-unlock broadcast.
//
// Precondition: Every player is locked in.
// Postcondition: Phase is PhaseGame and the class-unlock task is pending.
func (l *Lifecycle) BeginGame(room *Room) {
	if room.Phase != PhaseClassSelect {
		return
	}
	room.Phase = PhaseGame

	ids := room.PlayerIDs()
	roles := make(map[string]string, len(ids))
	classes := make(map[string]string, len(ids))
	killerID := ""
	for _, id := range ids {
		p, _ := room.Player(id)
		roles[id] = string(p.Role)
		classes[id] = p.Class
		if p.Role == RoleKiller {
			killerID = id
		}
	}
	spawns := l.layout.Assign(ids, killerID)

	l.logger.Info("game started", zap.String("room", room.Code))
	l.bcast.ToRoom(room, protocol.GameStartMsg{
		T:       protocol.TGameStart,
		Roles:   roles,
		Classes: classes,
		Spawns:  spawns,
	})

	room.SetClassUnlock(l.sched.Schedule(l.rules.ClassUnlockDelay, func() {
		if !l.registry.Contains(room) || room.Phase != PhaseGame {
			return
		}
		l.bcast.ToRoom(room, protocol.ClassUnlockMsg{T: protocol.TClassUnlock})
	}))
}

// CheckLastSurvivor runs after a death: with exactly one survivor left
// standing it broadcasts last_survivor, with none it ends the game for the
// killer. No effect outside the game phase.
func (l *Lifecycle) CheckLastSurvivor(room *Room) {
	if room.Phase != PhaseGame {
		return
	}
	var standing []*Player
	for _, p := range room.Survivors() {
		if p.HitState < HitDead && !p.Escaped {
			standing = append(standing, p)
		}
	}
	switch len(standing) {
	case 1:
		l.bcast.ToRoom(room, protocol.LastSurvivorMsg{T: protocol.TLastSurvivor, ID: standing[0].ID})
	case 0:
		l.EndGame(room, WinnerKiller)
	}
}

// CheckGameOver runs after an escape or departure: survivors win when every
// survivor is accounted for by escape or death with at least one escape;
// the killer wins when every survivor is dead. No effect outside the game
// phase.
func (l *Lifecycle) CheckGameOver(room *Room) {
	if room.Phase != PhaseGame {
		return
	}
	survivors := room.Survivors()
	escaped, dead := 0, 0
	for _, p := range survivors {
		switch {
		case p.Escaped:
			escaped++
		case p.HitState >= HitDead:
			dead++
		}
	}
	switch {
	case escaped > 0 && escaped+dead == len(survivors):
		l.EndGame(room, WinnerSurvivors)
	case len(survivors) > 0 && dead == len(survivors):
		l.EndGame(room, WinnerKiller)
	}
}

// EndGame moves the room to the post-game phase, cancels the class-unlock
// task, broadcasts the winner with a stats snapshot, and schedules the
// return to lobby. Idempotent: a no-op unless the room is in the game phase.
func (l *Lifecycle) EndGame(room *Room, winner string) {
	if room.Phase != PhaseGame {
		return
	}
	room.Phase = PhasePost
	room.CancelClassUnlock()

	stats := make([]protocol.PlayerStats, 0, room.PlayerCount())
	for _, p := range room.Players() {
		stats = append(stats, p.Stats())
	}

	l.logger.Info("game over",
		zap.String("room", room.Code),
		zap.String("winner", winner),
	)
	l.bcast.ToRoom(room, protocol.GameOverMsg{T: protocol.TGameOver, Winner: winner, Stats: stats})

	room.SetLobbyReset(l.sched.Schedule(l.rules.LobbyResetDelay, func() {
		if !l.registry.Contains(room) {
			return
		}
		l.ResetRoom(room)
	}))
}

// ResetRoom returns a post-game room to the lobby: clears the killer claim
// and every player's per-game state, keeps roster and host, and broadcasts
// the reset roster.
func (l *Lifecycle) ResetRoom(room *Room) {
	if room.Phase != PhasePost {
		return
	}
	room.Phase = PhaseLobby
	room.ClaimedKillerID = ""
	for _, p := range room.Players() {
		p.ResetGameState()
	}

	l.logger.Info("room reset to lobby", zap.String("room", room.Code))
	l.bcast.ToRoom(room, protocol.BackToLobbyMsg{
		T:       protocol.TBackToLobby,
		Code:    room.Code,
		HostID:  room.HostID,
		Players: room.Snapshot(),
	})
}
