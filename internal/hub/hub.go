package hub

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/campblood/server/internal/game"
	"github.com/campblood/server/internal/protocol"
)

// Hub resolves inbound frames to their room and player and dispatches them
// to the matching handler. Only the initial join is legal on an unresolved
// connection; everything else from an unbound connection is dropped.
type Hub struct {
	logger       *zap.Logger
	loop         *Loop
	registry     *game.Registry
	life         *game.Lifecycle
	bcast        *game.Broadcaster
	ids          *game.IDSource
	cooldownSecs int

	// bindings maps a connection to the room/player it joined as.
	// Touched only on the loop.
	bindings map[game.Conn]binding

	routes map[string]handlerFunc
}

type binding struct {
	roomCode string
	playerID string
}

// turn is the resolved context of one inbound frame.
type turn struct {
	conn   game.Conn
	room   *game.Room
	player *game.Player
}

type handlerFunc func(t *turn, data []byte)

// New creates a Hub and registers its dispatch table.
//
// Precondition: all arguments must be non-nil; cooldownSecs >= 0.
func New(logger *zap.Logger, loop *Loop, registry *game.Registry, life *game.Lifecycle, bcast *game.Broadcaster, ids *game.IDSource, cooldownSecs int) *Hub {
	h := &Hub{
		logger:       logger,
		loop:         loop,
		registry:     registry,
		life:         life,
		bcast:        bcast,
		ids:          ids,
		cooldownSecs: cooldownSecs,
		bindings:     make(map[game.Conn]binding),
	}
	h.routes = map[string]handlerFunc{
		protocol.TReady:         h.handleReady,
		protocol.TClaimKiller:   h.handleClaimKiller,
		protocol.TUnclaimKiller: h.handleUnclaimKiller,
		protocol.TStart:         h.handleStart,
		protocol.TClass:         h.handleClass,
		protocol.TLockIn:        h.handleLockIn,
		protocol.TState:         h.handleState,
		protocol.THit:           h.handleHit,
		protocol.THeal:          h.handleHeal,
		protocol.TEscape:        h.handleEscape,
		protocol.TItemFound:     h.handleItemFound,
		protocol.TAbilityUsed:   h.handleAbilityUsed,
		protocol.TStun:          h.handleStun,
		protocol.TChat:          h.handleChat,
		protocol.TGAUpdate:      h.handleGAUpdate,
		protocol.TGABlock:       h.handleGABlock,
	}
	return h
}

// HandleMessage submits an inbound frame for processing. Called from
// transport read goroutines.
func (h *Hub) HandleMessage(c game.Conn, data []byte) {
	h.loop.Submit(func() { h.process(c, data) })
}

// HandleClose submits a connection-loss event. Called from transport read
// goroutines when the channel ends for any reason.
func (h *Hub) HandleClose(c game.Conn) {
	h.loop.Submit(func() { h.disconnect(c) })
}

// process runs on the loop: decode the discriminator, resolve the sender,
// dispatch. Unparseable envelopes and frames from unbound connections are
// dropped silently (debug-logged only).
func (h *Hub) process(c game.Conn, data []byte) {
	typ, ok := protocol.MessageType(data)
	if !ok {
		h.logger.Debug("dropping unparseable frame")
		return
	}

	if typ == protocol.TJoin {
		h.handleJoin(c, data)
		return
	}

	t, ok := h.resolve(c)
	if !ok {
		h.logger.Debug("dropping frame from unbound connection", zap.String("type", typ))
		return
	}

	fn, ok := h.routes[typ]
	if !ok {
		h.logger.Debug("unknown message type", zap.String("type", typ))
		return
	}
	fn(t, data)
}

// resolve maps a connection to its live room and player.
func (h *Hub) resolve(c game.Conn) (*turn, bool) {
	b, ok := h.bindings[c]
	if !ok {
		return nil, false
	}
	room, ok := h.registry.Room(b.roomCode)
	if !ok {
		return nil, false
	}
	player, ok := room.Player(b.playerID)
	if !ok {
		return nil, false
	}
	return &turn{conn: c, room: room, player: player}, true
}

// sendError reports a recoverable rule violation to the offending
// connection only.
func (h *Hub) sendError(c game.Conn, err error) {
	if sendErr := c.Send(protocol.ErrorMsg{T: protocol.TError, Msg: err.Error()}); sendErr != nil {
		h.logger.Debug("error frame send failed", zap.Error(sendErr))
	}
}

// decode unmarshals the full frame into v. A frame that named a known type
// but carries garbage fields is dropped like any other malformed envelope.
func (h *Hub) decode(data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		h.logger.Debug("dropping frame with malformed payload", zap.Error(err))
		return false
	}
	return true
}

// disconnect handles connection loss: removes the player, destroys an
// emptied room, and otherwise migrates host, clears a held killer claim,
// announces the departure, and re-checks win conditions mid-game.
func (h *Hub) disconnect(c game.Conn) {
	b, ok := h.bindings[c]
	if !ok {
		return
	}
	delete(h.bindings, c)

	room, ok := h.registry.Room(b.roomCode)
	if !ok {
		return
	}
	p := room.RemovePlayer(b.playerID)
	if p == nil {
		return
	}

	h.logger.Info("player left",
		zap.String("room", room.Code),
		zap.String("player", p.ID),
	)

	if h.registry.DestroyIfEmpty(room) {
		return
	}

	if room.HostID == p.ID {
		// Deterministic migration: first remaining player in join order.
		newHost := room.Players()[0]
		room.HostID = newHost.ID
		h.bcast.ToPlayer(newHost, protocol.HostTransferMsg{T: protocol.THostTransfer})
		h.logger.Info("host migrated",
			zap.String("room", room.Code),
			zap.String("host", newHost.ID),
		)
	}

	if room.ClaimedKillerID == p.ID {
		room.ClaimedKillerID = ""
		h.bcast.ToRoom(room, protocol.KillerUnclaimedMsg{T: protocol.TKillerUnclaimed})
	}

	h.bcast.ToRoom(room, protocol.PlayerLeaveMsg{T: protocol.TPlayerLeave, ID: p.ID, Name: p.Name})

	if room.Phase == game.PhaseGame {
		// A departure can complete either win condition.
		h.life.CheckGameOver(room)
	}
}
