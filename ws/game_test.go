package ws

import (
	"testing"

	"poke-splendor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndJoinRoom(t *testing.T) {
	setupRedis(t)
	newRoom(t, "r1", "alice", 2)

	a, b := &fakeConn{}, &fakeConn{}
	require.NoError(t, validateAndJoinRoom("r1", "alice", a))
	require.NoError(t, validateAndJoinRoom("r1", "bob", b))
	assert.ErrorIs(t, validateAndJoinRoom("r1", "carol", &fakeConn{}), ErrRoomFull)

	// 重连替换旧连接
	a2 := &fakeConn{}
	require.NoError(t, validateAndJoinRoom("r1", "alice", a2))
	assert.True(t, a.closed)
	players, ok := RoomPlayers("r1")
	require.True(t, ok)
	require.Len(t, players, 2)
	assert.Equal(t, a2, players[0].Conn)

	assert.ErrorIs(t, validateAndJoinRoom("missing", "alice", a), ErrRoomNotFound)
}

func TestJoinAfterStartOnlyReconnects(t *testing.T) {
	setupRedis(t)
	newRoom(t, "r1", "alice", 3)
	require.NoError(t, validateAndJoinRoom("r1", "alice", &fakeConn{}))
	require.NoError(t, SetGameStatus("r1", entities.RoomStatusPlaying))

	assert.ErrorIs(t, validateAndJoinRoom("r1", "bob", &fakeConn{}), ErrGameStarted)
	assert.NoError(t, validateAndJoinRoom("r1", "alice", &fakeConn{}))
}

func TestReadyStartsGame(t *testing.T) {
	setupRedis(t)
	conns := startTwoHumans(t, "r1")

	info, err := GetRoomInfo("r1")
	require.NoError(t, err)
	assert.Equal(t, entities.RoomStatusPlaying, info.GameStatus)
	assert.NotEmpty(t, info.GameID)

	s, err := GetGameState("r1")
	require.NoError(t, err)
	require.Len(t, s.Players, 2)
	assert.True(t, s.Players[0].IsStarter)

	for id, c := range conns {
		msg := c.last("sync")
		require.NotNil(t, msg, id)
		assert.Equal(t, id, msg["playerId"])
	}
}

func TestUnreadyKeepsWaiting(t *testing.T) {
	setupRedis(t)
	newRoom(t, "r1", "alice", 2)
	a, b := &fakeConn{}, &fakeConn{}
	require.NoError(t, validateAndJoinRoom("r1", "alice", a))
	require.NoError(t, validateAndJoinRoom("r1", "bob", b))

	send(a, "r1", "alice", map[string]interface{}{"type": "ready"})
	send(a, "r1", "alice", map[string]interface{}{"type": "ready", "payload": false})
	send(b, "r1", "bob", map[string]interface{}{"type": "ready"})

	info, err := GetRoomInfo("r1")
	require.NoError(t, err)
	assert.Equal(t, entities.RoomStatusWaiting, info.GameStatus)
	msg := b.last("room")
	require.NotNil(t, msg)
	assert.Len(t, msg["players"], 2)
}

func TestTurnFlow(t *testing.T) {
	setupRedis(t)
	conns := startTwoHumans(t, "r1")

	s, err := GetGameState("r1")
	require.NoError(t, err)
	cur := s.CurrentPlayer().ID
	other := "alice"
	if cur == "alice" {
		other = "bob"
	}

	// 不是自己的回合
	send(conns[other], "r1", other, map[string]interface{}{"type": "take2", "payload": map[string]interface{}{"color": 0}})
	errMsg := conns[other].last("error")
	require.NotNil(t, errMsg)
	assert.Equal(t, ErrNotYourTurn.Error(), errMsg["message"])

	send(conns[cur], "r1", cur, map[string]interface{}{"type": "take3", "payload": map[string]interface{}{"colors": []int{0, 1, 2}}})
	s, err = GetGameState("r1")
	require.NoError(t, err)
	p := s.Players[findSeat(s, cur)]
	assert.Equal(t, 1, p.Tokens[entities.BallPoke])
	assert.Equal(t, 1, p.Tokens[entities.BallGreat])
	assert.Equal(t, entities.PrimaryTake3, s.PerTurn.PrimaryAction)

	last, err := GetLastData("r1", cur)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "take3", last.Action)

	// 主要行动只能做一次，被拒绝的操作不改状态
	send(conns[cur], "r1", cur, map[string]interface{}{"type": "take3", "payload": map[string]interface{}{"colors": []int{2, 3, 4}}})
	require.NotNil(t, conns[cur].last("error"))
	after, err := GetGameState("r1")
	require.NoError(t, err)
	assert.Equal(t, s.TokenPool, after.TokenPool)

	send(conns[cur], "r1", cur, map[string]interface{}{"type": "end_turn"})
	s, err = GetGameState("r1")
	require.NoError(t, err)
	assert.Equal(t, other, s.CurrentPlayer().ID)

	msg := conns[other].last("sync")
	require.NotNil(t, msg)
	roomData := msg["roomData"].(map[string]interface{})
	assert.Equal(t, other, roomData["currentPlayer"])
	assert.NotNil(t, msg["availability"])
	assert.Nil(t, conns[cur].last("sync")["availability"])
}

func TestDispatchRejectsBadMessages(t *testing.T) {
	setupRedis(t)
	conns := startTwoHumans(t, "r1")
	a := conns["alice"]

	dispatch(a, "r1", "alice", []byte("not json"))
	assert.Equal(t, ErrBadMessage.Error(), a.last("error")["message"])

	send(a, "r1", "alice", map[string]interface{}{"type": "fly"})
	assert.Equal(t, ErrBadMessage.Error(), a.last("error")["message"])

	send(a, "r1", "alice", map[string]interface{}{"type": "restart_game"})
	assert.Equal(t, ErrGameNotOver.Error(), a.last("error")["message"])
}

func TestAddAIOwnerOnly(t *testing.T) {
	setupRedis(t)
	newRoom(t, "r1", "alice", 3)
	a, b := &fakeConn{}, &fakeConn{}
	require.NoError(t, validateAndJoinRoom("r1", "alice", a))
	require.NoError(t, validateAndJoinRoom("r1", "bob", b))

	send(b, "r1", "bob", map[string]interface{}{"type": "add_ai"})
	assert.Equal(t, ErrNotRoomOwner.Error(), b.last("error")["message"])

	send(a, "r1", "alice", map[string]interface{}{"type": "add_ai", "payload": map[string]interface{}{"level": 1}})
	players, _ := RoomPlayers("r1")
	require.Len(t, players, 3)
	assert.True(t, IsAIPlayer(players[2].PlayerID))
	assert.Equal(t, 1, players[2].AILevel)
	assert.True(t, players[2].Ready)

	_, err := JoinRoomAsAI("r1", 1)
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestPlayAudio(t *testing.T) {
	setupRedis(t)
	conns := startTwoHumans(t, "r1")

	send(conns["alice"], "r1", "alice", map[string]interface{}{"type": "play_audio", "payload": "cheer"})
	msg := conns["bob"].last("audio")
	require.NotNil(t, msg)
	assert.Equal(t, "cheer", msg["message"])
	assert.Equal(t, "alice", msg["from"])
}

func TestDisconnectMarksOffline(t *testing.T) {
	setupRedis(t)
	conns := startTwoHumans(t, "r1")

	cleanupOnDisconnect("r1", "bob", conns["bob"])
	players, _ := RoomPlayers("r1")
	for _, pc := range players {
		if pc.PlayerID == "bob" {
			assert.False(t, pc.Online)
			assert.Nil(t, pc.Conn)
		}
	}
	require.NoError(t, validateAndJoinRoom("r1", "bob", &fakeConn{}))
}
