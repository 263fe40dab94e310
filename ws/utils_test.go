package ws

import (
	"path/filepath"
	"testing"
	"time"

	"poke-splendor/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	var p dto.Take2Payload
	require.NoError(t, decodePayload(map[string]interface{}{"payload": map[string]interface{}{"color": "3"}}, &p))
	assert.Equal(t, 3, p.Color)

	var c dto.Take3Payload
	require.NoError(t, decodePayload(map[string]interface{}{"payload": map[string]interface{}{"colors": []interface{}{0.0, "4"}}}, &c))
	assert.Equal(t, []int{0, 4}, c.Colors)

	assert.ErrorIs(t, decodePayload(map[string]interface{}{}, &p), ErrBadMessage)
	assert.ErrorIs(t, decodePayload(map[string]interface{}{"payload": map[string]interface{}{"color": "blue"}}, &p), ErrBadMessage)
}

func TestGameLogFilePath(t *testing.T) {
	setupRedis(t)
	assert.Equal(t, filepath.Join(logDir, "r1_unknown.jsonl"), getGameLogFilePath("r1"))

	require.NoError(t, SetGameStartTime("r1", time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local)))
	assert.Equal(t, filepath.Join(logDir, "r1_20250102_030405.jsonl"), getGameLogFilePath("r1"))
}

func TestBuildSyncMessage(t *testing.T) {
	setupRedis(t)
	s := newState(t)
	newRoom(t, "r1", "alice", 2)
	info, err := GetRoomInfo("r1")
	require.NoError(t, err)

	cur := s.CurrentPlayer().ID
	msg := BuildSyncMessage(info, s, cur)
	assert.Equal(t, "sync", msg.Type)
	assert.Equal(t, s.CurrentPlayerIndex, msg.SeatIndex)
	assert.NotNil(t, msg.Availability)
	assert.Len(t, msg.PlayerData, 2)
	for level, deck := range s.Decks {
		assert.Equal(t, len(deck), msg.RoomData.DeckSizes[level])
	}

	watcher := BuildSyncMessage(info, s, "nobody")
	assert.Equal(t, -1, watcher.SeatIndex)
	assert.Nil(t, watcher.Availability)
}
