package rules

import (
	"testing"

	"poke-splendor/entities"

	"github.com/stretchr/testify/require"
)

func cost(c entities.Ball, n int) entities.CostItem {
	return entities.CostItem{Color: c, Number: n}
}

func testCard(id string, level, point int, costs ...entities.CostItem) entities.Card {
	return entities.Card{ID: id, Name: id, Level: level, Point: point, Cost: costs}
}

func withReward(c entities.Card, color entities.Ball, n int) entities.Card {
	c.Reward = &entities.Reward{Color: color, Number: n}
	return c
}

// newTestState 空展示区、空牌堆的对局
func newTestState(t *testing.T, players int) *entities.GameState {
	t.Helper()
	pool, err := PoolForPlayers(players)
	require.NoError(t, err)
	s := &entities.GameState{
		Version:   entities.StateVersion,
		Turn:      1,
		TokenPool: pool,
		Market:    map[int][]*entities.Card{},
		Decks:     map[int][]entities.Card{},
	}
	for i := 0; i < players; i++ {
		s.Players = append(s.Players, &entities.Player{
			ID:      string(rune('a' + i)),
			Name:    string(rune('A' + i)),
			AILevel: entities.DisabledAILevel,
			Stacks:  map[string][]entities.Card{},
		})
	}
	RefillMarket(s)
	return s
}

func putMarket(s *entities.GameState, level, idx int, c entities.Card) {
	s.Market[level][idx] = &c
}

// giveTokens 从供应区转移给玩家，保持守恒
func giveTokens(s *entities.GameState, p *entities.Player, t entities.Tokens) {
	for c, n := range t {
		s.TokenPool[c] -= n
		p.Tokens[c] += n
	}
}
