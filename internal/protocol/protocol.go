// Package protocol defines the wire format spoken over each participant's
// websocket. Every frame is a flat JSON object with a required "t"
// discriminator; the remaining fields depend on the type.
package protocol

import "encoding/json"

// Client-to-server message types.
const (
	TJoin          = "join"
	TReady         = "ready"
	TClaimKiller   = "claim_killer"
	TUnclaimKiller = "unclaim_killer"
	TStart         = "start"
	TClass         = "class"
	TLockIn        = "lockin"
	TState         = "state"
	THit           = "hit"
	THeal          = "heal"
	TEscape        = "escape"
	TItemFound     = "item_found"
	TAbilityUsed   = "ability_used"
	TStun          = "stun"
	TChat          = "chat"
	TGAUpdate      = "ga_update"
	TGABlock       = "ga_block"
)

// Server-to-client message types.
const (
	TJoined           = "joined"
	TError            = "error"
	TPlayerJoin       = "player_join"
	TPlayerLobbyReady = "player_lobby_ready"
	TKillerClaimed    = "killer_claimed"
	TKillerUnclaimed  = "killer_unclaimed"
	TClassSelect      = "class_select"
	TClassUpdate      = "class_update"
	TPlayerLocked     = "player_locked"
	TGameStart        = "start"
	TClassUnlock      = "class_unlock"
	TKillerCooldown   = "killer_cd"
	TPlayerDead       = "player_dead"
	THealed           = "healed"
	TEscaped          = "escaped"
	TLastSurvivor     = "last_survivor"
	TGameOver         = "game_over"
	TBackToLobby      = "back_to_lobby"
	THostTransfer     = "host_transfer"
	TPlayerLeave      = "player_leave"
)

// Envelope is the minimal decodable frame: just the discriminator.
type Envelope struct {
	T string `json:"t"`
}

// MessageType extracts the discriminator from a raw frame.
//
// Postcondition: Returns (type, true) for a parseable frame with a non-empty
// discriminator, or ("", false) otherwise. Callers drop unparseable frames
// silently.
func MessageType(data []byte) (string, bool) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", false
	}
	if env.T == "" {
		return "", false
	}
	return env.T, true
}

// SpawnPoint is a 2D spawn location on the map (y is implied by terrain).
type SpawnPoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// PlayerInfo is the roster snapshot of one player, sent on join and on
// return to lobby.
type PlayerInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Class        string `json:"class"`
	Role         string `json:"role"`
	Locked       bool   `json:"locked"`
	ReadyInLobby bool   `json:"readyInLobby"`
	HitState     int    `json:"hitState"`
	IsGA         bool   `json:"isGA"`
	GATarget     string `json:"gaTarget"`
	Escaped      bool   `json:"escaped"`
}

// PlayerStats is the per-player entry of the end-of-game summary.
type PlayerStats struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Class    string `json:"class"`
	Escaped  bool   `json:"escaped"`
	HitState int    `json:"hitState"`
}

// Client-to-server payloads. Handlers unmarshal the full frame into these;
// absent numeric fields default to zero.

type Join struct {
	Name string `json:"name"`
	Room string `json:"room"`
}

type ClassPick struct {
	Class string `json:"class"`
}

type State struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Yaw    float64 `json:"yaw"`
	Moving bool    `json:"moving"`
}

type Hit struct {
	VictimID string `json:"victimId"`
}

type Heal struct {
	TargetID string `json:"targetId"`
}

type ItemFound struct {
	ItemID string `json:"itemId"`
}

type AbilityUsed struct {
	Ability string          `json:"ability"`
	Data    json.RawMessage `json:"data"`
}

type Stun struct {
	KillerID string  `json:"killerId"`
	Duration float64 `json:"duration"`
	Blind    bool    `json:"blind"`
}

type Chat struct {
	Text string `json:"text"`
}

type GAUpdate struct {
	TargetID string `json:"targetId"`
}

type GABlock struct {
	VictimID string `json:"victimId"`
}

// Server-to-client frames. The T field is always one of the constants above;
// constructing these as literals mirrors the flat wire objects.

type JoinedMsg struct {
	T               string       `json:"t"`
	ID              string       `json:"id"`
	Room            string       `json:"room"`
	IsHost          bool         `json:"isHost"`
	Players         []PlayerInfo `json:"players"`
	ClaimedKillerID string       `json:"claimedKillerId"`
}

type ErrorMsg struct {
	T   string `json:"t"`
	Msg string `json:"msg"`
}

type PlayerJoinMsg struct {
	T    string `json:"t"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LobbyReadyMsg struct {
	T     string `json:"t"`
	ID    string `json:"id"`
	Ready bool   `json:"ready"`
}

type KillerClaimedMsg struct {
	T           string `json:"t"`
	ClaimerID   string `json:"claimerId"`
	ClaimerName string `json:"claimerName"`
}

type KillerUnclaimedMsg struct {
	T string `json:"t"`
}

type ClassSelectMsg struct {
	T     string            `json:"t"`
	Roles map[string]string `json:"roles"`
}

type ClassUpdateMsg struct {
	T     string `json:"t"`
	ID    string `json:"id"`
	Class string `json:"class"`
}

type PlayerLockedMsg struct {
	T  string `json:"t"`
	ID string `json:"id"`
}

type GameStartMsg struct {
	T       string                `json:"t"`
	Roles   map[string]string     `json:"roles"`
	Classes map[string]string     `json:"classes"`
	Spawns  map[string]SpawnPoint `json:"spawns"`
}

type ClassUnlockMsg struct {
	T string `json:"t"`
}

type StateMsg struct {
	T        string  `json:"t"`
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Z        float64 `json:"z"`
	Yaw      float64 `json:"yaw"`
	Moving   bool    `json:"moving"`
	HitState int     `json:"hitState"`
}

type HitMsg struct {
	T          string `json:"t"`
	VictimID   string `json:"victimId"`
	AttackerID string `json:"attackerId"`
	NewState   int    `json:"newState"`
	Recovered  bool   `json:"recovered"`
}

type KillerCooldownMsg struct {
	T        string `json:"t"`
	Duration int    `json:"duration"`
}

type PlayerDeadMsg struct {
	T  string `json:"t"`
	ID string `json:"id"`
}

type HealedMsg struct {
	T        string `json:"t"`
	TargetID string `json:"targetId"`
	NewState int    `json:"newState"`
}

type EscapedMsg struct {
	T    string `json:"t"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemFoundMsg struct {
	T        string `json:"t"`
	ItemID   string `json:"itemId"`
	FinderID string `json:"finderId"`
}

type AbilityUsedMsg struct {
	T       string          `json:"t"`
	ID      string          `json:"id"`
	Ability string          `json:"ability"`
	Data    json.RawMessage `json:"data"`
}

type StunMsg struct {
	T        string  `json:"t"`
	KillerID string  `json:"killerId"`
	Duration float64 `json:"duration"`
	Blind    bool    `json:"blind"`
}

type ChatMsg struct {
	T    string `json:"t"`
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

type GAUpdateMsg struct {
	T        string `json:"t"`
	GAID     string `json:"gaId"`
	TargetID string `json:"targetId"`
}

type GABlockMsg struct {
	T    string `json:"t"`
	GAID string `json:"gaId"`
}

type LastSurvivorMsg struct {
	T  string `json:"t"`
	ID string `json:"id"`
}

type GameOverMsg struct {
	T      string        `json:"t"`
	Winner string        `json:"winner"`
	Stats  []PlayerStats `json:"stats"`
}

type BackToLobbyMsg struct {
	T       string       `json:"t"`
	Code    string       `json:"code"`
	HostID  string       `json:"hostId"`
	Players []PlayerInfo `json:"players"`
}

type HostTransferMsg struct {
	T string `json:"t"`
}

type PlayerLeaveMsg struct {
	T    string `json:"t"`
	ID   string `json:"id"`
	Name string `json:"name"`
}
