package service

import (
	"testing"

	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/rules"
	"poke-splendor/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playingRoom(t *testing.T) (string, *entities.GameState) {
	t.Helper()
	roomID, err := CreateRoom(dto.CreateRoomRequest{MaxPlayers: 2, UserID: "alice"})
	require.NoError(t, err)
	s := newState(t, "alice", "bob")
	require.NoError(t, ws.RestoreGameState(roomID, s))
	return roomID, s
}

func TestExportState(t *testing.T) {
	setup(t)

	_, err := ExportState("missing")
	assert.ErrorIs(t, err, ws.ErrNoGameState)

	roomID, s := playingRoom(t)
	out, err := ExportState(roomID)
	require.NoError(t, err)
	require.Len(t, out.Players, 2)
	assert.Equal(t, "alice", out.Players[0].ID)
	assert.Equal(t, s.TokenPool, out.State.TokenPool)
	assert.True(t, out.Availability.AnyPrimary())
}

func TestSaveAndLoadGame(t *testing.T) {
	setup(t)
	roomID, s := playingRoom(t)

	assert.ErrorIs(t, LoadGame(roomID), ws.ErrNoSnapshot)
	require.NoError(t, SaveGame(roomID))

	// 存档之后继续下棋
	require.NoError(t, rules.Take3(s, []entities.Ball{entities.BallPoke, entities.BallHeal, entities.BallGreat}))
	require.NoError(t, ws.SetGameState(roomID, s))

	require.NoError(t, LoadGame(roomID))
	got, err := ws.GetGameState(roomID)
	require.NoError(t, err)
	assert.Equal(t, entities.PrimaryNone, got.PerTurn.PrimaryAction)
	for _, p := range got.Players {
		assert.Zero(t, rules.TotalTokens(p))
	}
}

func TestLoadGameRejectsInvalidSnapshot(t *testing.T) {
	setup(t)
	roomID, s := playingRoom(t)

	bad := s.Clone()
	bad.TokenPool[entities.BallPoke] += 3
	require.NoError(t, ws.SaveSnapshot(roomID, bad))

	err := LoadGame(roomID)
	assert.ErrorIs(t, err, rules.ErrInvalidState)
	got, err := ws.GetGameState(roomID)
	require.NoError(t, err)
	assert.Equal(t, s.TokenPool, got.TokenPool)
}
