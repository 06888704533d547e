package hub

import (
	"go.uber.org/zap"

	"github.com/campblood/server/internal/game"
	"github.com/campblood/server/internal/protocol"
)

// handleJoin admits a connection into a room: resolves or creates the room,
// mints a player id, binds the connection, confirms the join with a roster
// snapshot, and announces the arrival to the rest of the room.
func (h *Hub) handleJoin(c game.Conn, data []byte) {
	var req protocol.Join
	if !h.decode(data, &req) {
		return
	}
	if _, bound := h.bindings[c]; bound {
		// Already in a room; a second join on the same connection is dropped.
		return
	}

	room, created, err := h.registry.CreateOrJoin(req.Room)
	if err != nil {
		h.sendError(c, err)
		return
	}

	id := h.ids.ID(game.PlayerIDLen)
	for _, taken := room.Player(id); taken; _, taken = room.Player(id) {
		id = h.ids.ID(game.PlayerIDLen)
	}
	p := game.NewPlayer(id, req.Name, c)
	if err := room.AddPlayer(p); err != nil {
		h.sendError(c, err)
		return
	}
	h.bindings[c] = binding{roomCode: room.Code, playerID: p.ID}

	h.logger.Info("player joined",
		zap.String("room", room.Code),
		zap.String("player", p.ID),
		zap.String("name", p.Name),
		zap.Bool("created", created),
	)

	h.bcast.ToPlayer(p, protocol.JoinedMsg{
		T:               protocol.TJoined,
		ID:              p.ID,
		Room:            room.Code,
		IsHost:          room.HostID == p.ID,
		Players:         room.Snapshot(),
		ClaimedKillerID: room.ClaimedKillerID,
	})
	h.bcast.ToRoomExcept(room, p.ID, protocol.PlayerJoinMsg{
		T:    protocol.TPlayerJoin,
		ID:   p.ID,
		Name: p.Name,
	})
}

// handleReady toggles the lobby ready flag and tells everyone.
func (h *Hub) handleReady(t *turn, _ []byte) {
	t.player.ReadyInLobby = !t.player.ReadyInLobby
	h.bcast.ToRoom(t.room, protocol.LobbyReadyMsg{
		T:     protocol.TPlayerLobbyReady,
		ID:    t.player.ID,
		Ready: t.player.ReadyInLobby,
	})
}

// handleClaimKiller reserves the killer role for the caller. Only one claim
// may be held at a time; a conflicting claim errors back to the caller only.
func (h *Hub) handleClaimKiller(t *turn, _ []byte) {
	if t.room.ClaimedKillerID != "" {
		h.sendError(t.conn, game.ErrKillerAlreadyClaimed)
		return
	}
	t.room.ClaimedKillerID = t.player.ID
	h.bcast.ToRoom(t.room, protocol.KillerClaimedMsg{
		T:           protocol.TKillerClaimed,
		ClaimerID:   t.player.ID,
		ClaimerName: t.player.Name,
	})
}

// handleUnclaimKiller releases the claim; a no-op unless the caller holds it.
func (h *Hub) handleUnclaimKiller(t *turn, _ []byte) {
	if t.room.ClaimedKillerID != t.player.ID {
		return
	}
	t.room.ClaimedKillerID = ""
	h.bcast.ToRoom(t.room, protocol.KillerUnclaimedMsg{T: protocol.TKillerUnclaimed})
}

// handleStart forwards the host's start request to the game lifecycle.
func (h *Hub) handleStart(t *turn, _ []byte) {
	if err := h.life.Start(t.room, t.player.ID); err != nil {
		h.sendError(t.conn, err)
	}
}

// handleClass records a class pick and tells everyone.
func (h *Hub) handleClass(t *turn, data []byte) {
	var req protocol.ClassPick
	if !h.decode(data, &req) {
		return
	}
	t.player.Class = req.Class
	h.bcast.ToRoom(t.room, protocol.ClassUpdateMsg{
		T:     protocol.TClassUpdate,
		ID:    t.player.ID,
		Class: t.player.Class,
	})
}

// handleLockIn commits the caller's class pick; when the last player locks
// in, the game begins.
func (h *Hub) handleLockIn(t *turn, _ []byte) {
	if t.player.Class == "" {
		h.sendError(t.conn, game.ErrNoClassSelected)
		return
	}
	t.player.Locked = true
	h.bcast.ToRoom(t.room, protocol.PlayerLockedMsg{T: protocol.TPlayerLocked, ID: t.player.ID})

	if t.room.AllLocked() {
		h.life.BeginGame(t.room)
	}
}
