package hub

import (
	"encoding/json"

	"github.com/campblood/server/internal/game"
	"github.com/campblood/server/internal/protocol"
)

// In-game relay handlers. These trust client-reported movement and ability
// data (authoritative-client model); the server only tracks hit tiers and
// win conditions.

// handleState stores the caller's reported position and relays it, with the
// server-held hit tier attached, to everyone else.
func (h *Hub) handleState(t *turn, data []byte) {
	var req protocol.State
	if !h.decode(data, &req) {
		return
	}
	t.player.X = req.X
	t.player.Y = req.Y
	t.player.Z = req.Z
	t.player.Yaw = req.Yaw

	h.bcast.ToRoomExcept(t.room, t.player.ID, protocol.StateMsg{
		T:        protocol.TState,
		ID:       t.player.ID,
		X:        t.player.X,
		Y:        t.player.Y,
		Z:        t.player.Z,
		Yaw:      t.player.Yaw,
		Moving:   req.Moving,
		HitState: t.player.HitState,
	})
}

// handleHit advances the victim's hit tier, announces it room-wide, fires
// the death path at tier 3, and tells the attacker (only) its advisory
// cooldown. Unknown victim ids are ignored.
func (h *Hub) handleHit(t *turn, data []byte) {
	var req protocol.Hit
	if !h.decode(data, &req) {
		return
	}
	victim, ok := t.room.Player(req.VictimID)
	if !ok {
		return
	}

	newState := victim.ApplyHit()
	h.bcast.ToRoom(t.room, protocol.HitMsg{
		T:          protocol.THit,
		VictimID:   victim.ID,
		AttackerID: t.player.ID,
		NewState:   newState,
		Recovered:  false,
	})
	if newState >= game.HitDead {
		h.bcast.ToRoom(t.room, protocol.PlayerDeadMsg{T: protocol.TPlayerDead, ID: victim.ID})
		h.life.CheckLastSurvivor(t.room)
	}

	// Advisory only; the attacker's client enforces the window.
	h.bcast.ToPlayer(t.player, protocol.KillerCooldownMsg{
		T:        protocol.TKillerCooldown,
		Duration: h.cooldownSecs,
	})
}

// handleHeal lowers the target's hit tier and announces it. Unknown target
// ids are ignored.
func (h *Hub) handleHeal(t *turn, data []byte) {
	var req protocol.Heal
	if !h.decode(data, &req) {
		return
	}
	target, ok := t.room.Player(req.TargetID)
	if !ok {
		return
	}

	h.bcast.ToRoom(t.room, protocol.HealedMsg{
		T:        protocol.THealed,
		TargetID: target.ID,
		NewState: target.ApplyHeal(),
	})
}

// handleEscape marks the caller escaped (terminal) and re-evaluates the
// full game-over condition.
func (h *Hub) handleEscape(t *turn, _ []byte) {
	t.player.Escaped = true
	t.player.HitState = game.HitEscaped
	h.bcast.ToRoom(t.room, protocol.EscapedMsg{
		T:    protocol.TEscaped,
		ID:   t.player.ID,
		Name: t.player.Name,
	})
	h.life.CheckGameOver(t.room)
}

// handleItemFound relays an item pickup to everyone, the finder included.
func (h *Hub) handleItemFound(t *turn, data []byte) {
	var req protocol.ItemFound
	if !h.decode(data, &req) {
		return
	}
	h.bcast.ToRoom(t.room, protocol.ItemFoundMsg{
		T:        protocol.TItemFound,
		ItemID:   req.ItemID,
		FinderID: t.player.ID,
	})
}

// handleAbilityUsed relays an opaque ability payload to everyone else.
func (h *Hub) handleAbilityUsed(t *turn, data []byte) {
	var req protocol.AbilityUsed
	if !h.decode(data, &req) {
		return
	}
	if len(req.Data) == 0 {
		req.Data = json.RawMessage("{}")
	}
	h.bcast.ToRoomExcept(t.room, t.player.ID, protocol.AbilityUsedMsg{
		T:       protocol.TAbilityUsed,
		ID:      t.player.ID,
		Ability: req.Ability,
		Data:    req.Data,
	})
}

// handleStun relays a stun against the killer to everyone else; a missing
// duration defaults to 5.
func (h *Hub) handleStun(t *turn, data []byte) {
	var req protocol.Stun
	if !h.decode(data, &req) {
		return
	}
	if req.Duration == 0 {
		req.Duration = 5
	}
	h.bcast.ToRoomExcept(t.room, t.player.ID, protocol.StunMsg{
		T:        protocol.TStun,
		KillerID: req.KillerID,
		Duration: req.Duration,
		Blind:    req.Blind,
	})
}

// handleChat relays a chat line, clamped to the chat length limit, to
// everyone including the sender.
func (h *Hub) handleChat(t *turn, data []byte) {
	var req protocol.Chat
	if !h.decode(data, &req) {
		return
	}
	h.bcast.ToRoom(t.room, protocol.ChatMsg{
		T:    protocol.TChat,
		ID:   t.player.ID,
		Name: t.player.Name,
		Text: game.ClampText(req.Text, game.MaxChatLen),
	})
}

// handleGAUpdate records the caller's guardian-angel target and tells
// everyone.
func (h *Hub) handleGAUpdate(t *turn, data []byte) {
	var req protocol.GAUpdate
	if !h.decode(data, &req) {
		return
	}
	t.player.GATarget = req.TargetID
	h.bcast.ToRoom(t.room, protocol.GAUpdateMsg{
		T:        protocol.TGAUpdate,
		GAID:     t.player.ID,
		TargetID: req.TargetID,
	})
}

// handleGABlock announces a guardian-angel block and compensates the
// prevented kill by lowering the victim's hit tier one step.
func (h *Hub) handleGABlock(t *turn, data []byte) {
	var req protocol.GABlock
	if !h.decode(data, &req) {
		return
	}
	h.bcast.ToRoom(t.room, protocol.GABlockMsg{T: protocol.TGABlock, GAID: t.player.ID})
	if victim, ok := t.room.Player(req.VictimID); ok {
		victim.ApplyHeal()
	}
}
