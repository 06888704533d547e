package game

import "go.uber.org/zap"

// Broadcaster delivers outbound frames to players. Delivery is
// fire-and-forget: a send to a closed connection is logged at debug level
// and otherwise ignored, so one dead client can never stall a room.
type Broadcaster struct {
	logger *zap.Logger
}

// NewBroadcaster creates a Broadcaster.
//
// Precondition: logger must be non-nil.
func NewBroadcaster(logger *zap.Logger) *Broadcaster {
	return &Broadcaster{logger: logger}
}

// ToPlayer sends v to a single player.
func (b *Broadcaster) ToPlayer(p *Player, v any) {
	if p == nil || p.Conn == nil {
		return
	}
	if err := p.Conn.Send(v); err != nil {
		b.logger.Debug("send failed",
			zap.String("player", p.ID),
			zap.Error(err),
		)
	}
}

// ToRoom sends v to every player in the room, in join order.
func (b *Broadcaster) ToRoom(r *Room, v any) {
	for _, p := range r.Players() {
		b.ToPlayer(p, v)
	}
}

// ToRoomExcept sends v to every player in the room except the one with the
// given id.
func (b *Broadcaster) ToRoomExcept(r *Room, exceptID string, v any) {
	for _, p := range r.Players() {
		if p.ID == exceptID {
			continue
		}
		b.ToPlayer(p, v)
	}
}
