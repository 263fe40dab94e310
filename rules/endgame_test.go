package rules

import (
	"testing"

	"poke-splendor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndGameWaitsForLastSeat(t *testing.T) {
	s := newTestState(t, 3)
	s.Players[1].Hand = []entities.Card{testCard("big", 3, 18)}

	require.NoError(t, SkipPrimary(s))
	require.NoError(t, EndTurn(s))
	assert.True(t, s.EndTriggered)
	assert.Equal(t, 1, s.EndTriggerTurn)
	assert.False(t, s.VictoryResolved)

	require.NoError(t, SkipPrimary(s))
	require.NoError(t, EndTurn(s))
	assert.False(t, s.VictoryResolved)
	assert.Equal(t, 2, s.CurrentPlayerIndex)

	require.NoError(t, SkipPrimary(s))
	require.NoError(t, EndTurn(s))
	assert.True(t, s.VictoryResolved)
	assert.Equal(t, s.Players[1], Winner(s))
	assert.ErrorIs(t, SkipPrimary(s), ErrGameOver)
	assert.ErrorIs(t, EndTurn(s), ErrGameOver)
	assert.True(t, GetAvailability(s).EndTurn)
}

func TestRankTieBreak(t *testing.T) {
	s := newTestState(t, 4)
	s.Players[0].Hand = []entities.Card{testCard("a", 3, 10), testCard("pa", 1, -1), testCard("a2", 2, 9)}
	s.Players[1].Hand = []entities.Card{testCard("b", 3, 18)}
	s.Players[2].Hand = []entities.Card{testCard("c", 3, 9), testCard("c2", 3, 9)}
	s.Players[3].Hand = []entities.Card{testCard("d", 3, 18)}

	ranking := Rank(s)
	order := make([]int, len(ranking))
	for i, st := range ranking {
		order[i] = st.PlayerIndex
	}
	// 2 与 1、3 同分但非惩罚卡更多；1 与 3 比座位；0 有惩罚卡
	assert.Equal(t, []int{2, 1, 3, 0}, order)
	assert.Equal(t, Rank(s), ranking)
}

func TestCheckEndTriggerOnlyOnce(t *testing.T) {
	s := newTestState(t, 2)
	s.Players[0].Hand = []entities.Card{testCard("big", 3, 18)}
	assert.True(t, CheckEndTrigger(s))
	s.Turn = 4
	assert.True(t, CheckEndTrigger(s))
	assert.Equal(t, 1, s.EndTriggerTurn)
	assert.True(t, ShouldResolveVictory(s, false))
}
