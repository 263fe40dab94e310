package ai

import (
	"testing"

	"poke-splendor/entities"
	"poke-splendor/rules"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func cost(c entities.Ball, n int) entities.CostItem {
	return entities.CostItem{Color: c, Number: n}
}

func testCard(id string, level, point int, costs ...entities.CostItem) entities.Card {
	return entities.Card{ID: id, Name: id, Level: level, Point: point, Cost: costs}
}

// newTable 座位 0 是指定难度的 AI，其余是真人，展示区和牌堆为空
func newTable(t *testing.T, players, aiLevel int) *entities.GameState {
	t.Helper()
	pool, err := rules.PoolForPlayers(players)
	require.NoError(t, err)
	s := &entities.GameState{
		Version:   entities.StateVersion,
		Turn:      1,
		TokenPool: pool,
		Market:    map[int][]*entities.Card{},
		Decks:     map[int][]entities.Card{},
	}
	for i := 0; i < players; i++ {
		level := entities.DisabledAILevel
		if i == 0 {
			level = aiLevel
		}
		s.Players = append(s.Players, &entities.Player{
			ID:      string(rune('a' + i)),
			Name:    string(rune('A' + i)),
			AILevel: level,
			Stacks:  map[string][]entities.Card{},
		})
	}
	rules.RefillMarket(s)
	return s
}

func put(s *entities.GameState, level, idx int, c entities.Card) {
	s.Market[level][idx] = &c
}

func give(s *entities.GameState, p *entities.Player, t entities.Tokens) {
	for c, n := range t {
		s.TokenPool[c] -= n
		p.Tokens[c] += n
	}
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
