package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRegistry() *Registry {
	return NewRegistry(zap.NewNop(), NewSeededIDSource(7))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABCD", NormalizeCode("  abcd "))
	assert.Equal(t, "X9Z1", NormalizeCode("x9z1"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestCreateOrJoinMintsRoom(t *testing.T) {
	reg := newTestRegistry()

	room, created, err := reg.CreateOrJoin("")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, room.Code, RoomCodeLen)
	assert.Equal(t, PhaseLobby, room.Phase)
	assert.Equal(t, 1, reg.RoomCount())
}

func TestCreateOrJoinUnknownCodeMintsFreshCode(t *testing.T) {
	reg := newTestRegistry()

	room, created, err := reg.CreateOrJoin("ZZZZ")
	require.NoError(t, err)
	assert.True(t, created)
	// An unknown code is not honored; the server assigns its own.
	assert.NotEqual(t, "ZZZZ", room.Code)
}

func TestCreateOrJoinExistingRoom(t *testing.T) {
	reg := newTestRegistry()
	room, _, err := reg.CreateOrJoin("")
	require.NoError(t, err)

	same, created, err := reg.CreateOrJoin("  " + room.Code + " ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, room, same)
}

func TestCreateOrJoinRejectsInProgress(t *testing.T) {
	reg := newTestRegistry()
	room, _, err := reg.CreateOrJoin("")
	require.NoError(t, err)
	room.Phase = PhaseGame

	_, _, err = reg.CreateOrJoin(room.Code)
	require.ErrorIs(t, err, ErrRoomInProgress)
}

func TestCreateOrJoinRejectsFullRoom(t *testing.T) {
	reg := newTestRegistry()
	room, _, err := reg.CreateOrJoin("")
	require.NoError(t, err)
	addPlayers(t, room, MaxPlayers)

	_, _, err = reg.CreateOrJoin(room.Code)
	require.ErrorIs(t, err, ErrRoomFull)
}

func TestDestroyIfEmpty(t *testing.T) {
	reg := newTestRegistry()
	room, _, err := reg.CreateOrJoin("")
	require.NoError(t, err)
	players := addPlayers(t, room, 1)

	assert.False(t, reg.DestroyIfEmpty(room))
	assert.True(t, reg.Contains(room))

	room.RemovePlayer(players[0].ID)
	assert.True(t, reg.DestroyIfEmpty(room))
	assert.False(t, reg.Contains(room))
	assert.Equal(t, 0, reg.RoomCount())
}

func TestDestroyCancelsPendingTasks(t *testing.T) {
	reg := newTestRegistry()
	room, _, err := reg.CreateOrJoin("")
	require.NoError(t, err)

	sched := &fakeSched{}
	task := sched.Schedule(0, func() {})
	room.SetLobbyReset(task)

	require.True(t, reg.DestroyIfEmpty(room))
	assert.True(t, task.(*fakeScheduled).cancelled)
}
