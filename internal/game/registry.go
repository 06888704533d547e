package game

import (
	"strings"

	"go.uber.org/zap"
)

// Registry maps room codes to live rooms. It creates rooms on demand,
// admits joins, and garbage-collects empty rooms. All methods run on the
// coordinator loop; no locking is required.
type Registry struct {
	logger *zap.Logger
	ids    *IDSource
	rooms  map[string]*Room
}

// NewRegistry creates an empty Registry.
//
// Precondition: logger and ids must be non-nil.
func NewRegistry(logger *zap.Logger, ids *IDSource) *Registry {
	return &Registry{
		logger: logger,
		ids:    ids,
		rooms:  make(map[string]*Room),
	}
}

// NormalizeCode trims and uppercases a client-supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CreateOrJoin resolves a join request. An empty or unknown code mints a
// fresh room; a known code is validated for admission.
//
// Postcondition: Returns (room, created, nil) on success, or a nil room with
// ErrRoomInProgress / ErrRoomFull when the target room cannot admit another
// player. The caller adds the player to the returned room.
func (g *Registry) CreateOrJoin(code string) (*Room, bool, error) {
	code = NormalizeCode(code)

	if room, ok := g.rooms[code]; ok {
		if room.Phase != PhaseLobby {
			return nil, false, ErrRoomInProgress
		}
		if room.PlayerCount() >= MaxPlayers {
			return nil, false, ErrRoomFull
		}
		return room, false, nil
	}

	code = g.ids.ID(RoomCodeLen)
	for g.rooms[code] != nil {
		code = g.ids.ID(RoomCodeLen)
	}
	room := NewRoom(code)
	g.rooms[code] = room
	g.logger.Info("room created", zap.String("room", code))
	return room, true, nil
}

// Room returns the live room for the given (normalized) code.
func (g *Registry) Room(code string) (*Room, bool) {
	room, ok := g.rooms[NormalizeCode(code)]
	return room, ok
}

// DestroyIfEmpty deletes the room and cancels its pending tasks when its
// roster is empty. Invoked after every player removal.
//
// Postcondition: Returns true when the room was destroyed.
func (g *Registry) DestroyIfEmpty(room *Room) bool {
	if room.PlayerCount() > 0 {
		return false
	}
	room.CancelTasks()
	delete(g.rooms, room.Code)
	g.logger.Info("room destroyed", zap.String("room", room.Code))
	return true
}

// Contains reports whether the room is still registered. Deferred tasks use
// this to no-op after a teardown that raced their firing.
func (g *Registry) Contains(room *Room) bool {
	return g.rooms[room.Code] == room
}

// RoomCount returns the number of live rooms.
func (g *Registry) RoomCount() int {
	return len(g.rooms)
}
