package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageType(t *testing.T) {
	typ, ok := MessageType([]byte(`{"t":"join","name":"Ana","room":""}`))
	require.True(t, ok)
	assert.Equal(t, TJoin, typ)
}

func TestMessageType_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"name":"Ana"}`, `{"t":""}`, `[1,2]`} {
		_, ok := MessageType([]byte(raw))
		assert.False(t, ok, "frame %q should be dropped", raw)
	}
}

func TestState_MissingFieldsDefaultToZero(t *testing.T) {
	var st State
	require.NoError(t, json.Unmarshal([]byte(`{"t":"state","x":3.5}`), &st))
	assert.Equal(t, 3.5, st.X)
	assert.Zero(t, st.Y)
	assert.Zero(t, st.Z)
	assert.Zero(t, st.Yaw)
	assert.False(t, st.Moving)
}

func TestJoinedMsg_WireShape(t *testing.T) {
	msg := JoinedMsg{
		T:      TJoined,
		ID:     "AB12CD34",
		Room:   "XK3F",
		IsHost: true,
		Players: []PlayerInfo{
			{ID: "AB12CD34", Name: "Ana"},
		},
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "joined", decoded["t"])
	assert.Equal(t, "XK3F", decoded["room"])
	assert.Equal(t, true, decoded["isHost"])
	assert.Contains(t, decoded, "claimedKillerId")
}
