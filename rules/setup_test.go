package rules

import (
	"testing"

	"poke-splendor/const_data"
	"poke-splendor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPoolForPlayers(t *testing.T) {
	pool, err := PoolForPlayers(2)
	require.NoError(t, err)
	assert.Equal(t, entities.Tokens{4, 4, 4, 4, 4, 5}, pool)

	pool, err = PoolForPlayers(4)
	require.NoError(t, err)
	assert.Equal(t, entities.Tokens{7, 7, 7, 7, 7, 5}, pool)

	_, err = PoolForPlayers(5)
	assert.ErrorIs(t, err, ErrPlayerCount)
}

func TestNewGameDealsMarket(t *testing.T) {
	library, err := const_data.DefaultLibrary()
	require.NoError(t, err)
	lib := library.ByLevel()
	seats := []Seat{{ID: "p1", Name: "小智", AILevel: -1}, {ID: "p2", Name: "AI", AILevel: 2}, {ID: "p3", Name: "AI2", AILevel: 4}}

	s, err := NewGame(lib, seats, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Turn)
	assert.True(t, s.Players[0].IsStarter)
	assert.False(t, s.Players[1].IsStarter)
	for _, level := range entities.Levels {
		assert.Len(t, s.Market[level], entities.MarketSlotSizes[level])
		assert.Equal(t, len(lib[level])-entities.MarketSlotSizes[level], len(s.Decks[level]))
	}
	assert.NoError(t, ValidateState(s))

	again, err := NewGame(lib, seats, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, s.Decks, again.Decks)
}

func TestValidateStateRejectsBrokenSave(t *testing.T) {
	s := newTestState(t, 2)
	require.NoError(t, ValidateState(s))

	s.Players[0].Tokens[entities.BallPoke] = 3
	assert.ErrorIs(t, ValidateState(s), ErrInvalidState)

	s = newTestState(t, 2)
	s.CurrentPlayerIndex = 5
	assert.ErrorIs(t, ValidateState(s), ErrInvalidState)

	// 超过上限只允许出现在待归还的玩家身上
	s = newTestState(t, 2)
	giveTokens(s, s.Players[0], entities.Tokens{3, 3, 2, 2, 1, 0})
	assert.ErrorIs(t, ValidateState(s), ErrInvalidState)
	s.PendingReturn = &entities.TokenReturn{PlayerIndex: 0, Required: 1}
	assert.NoError(t, ValidateState(s))

	assert.ErrorIs(t, ValidateState(nil), ErrInvalidState)
}

func TestAvailabilityFollowsState(t *testing.T) {
	s := newTestState(t, 2)
	a := GetAvailability(s)
	assert.True(t, a.Take3)
	assert.True(t, a.Take2)
	assert.False(t, a.Reserve)
	assert.False(t, a.Buy)
	assert.False(t, a.Evolve)
	assert.False(t, a.EndTurn)

	putMarket(s, 1, 0, testCard("free", 1, 0))
	a = GetAvailability(s)
	assert.True(t, a.Reserve)
	assert.True(t, a.Buy)

	s.TokenPool = entities.Tokens{}
	s.Market = map[int][]*entities.Card{}
	RefillMarket(s)
	a = GetAvailability(s)
	assert.False(t, a.AnyPrimary())
	assert.False(t, a.Take())
}
