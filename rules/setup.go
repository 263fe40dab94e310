package rules

import (
	"time"

	"poke-splendor/entities"

	"golang.org/x/exp/rand"
)

// Seat 开局时的一个座位
type Seat struct {
	ID      string
	Name    string
	AILevel int
}

// PoolForPlayers 按人数配置初始供应区，大师球固定 5 个
func PoolForPlayers(n int) (entities.Tokens, error) {
	var per int
	switch n {
	case 2:
		per = 4
	case 3:
		per = 6
	case 4:
		per = 7
	default:
		return entities.Tokens{}, ErrPlayerCount
	}
	var pool entities.Tokens
	for _, c := range entities.RegularBalls {
		pool[c] = per
	}
	pool[entities.BallMaster] = 5
	return pool, nil
}

// NewGame 洗牌、发展示区并创建玩家，第一个座位先手
func NewGame(library map[int][]entities.Card, seats []Seat, rng *rand.Rand) (*entities.GameState, error) {
	pool, err := PoolForPlayers(len(seats))
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}

	s := &entities.GameState{
		Version:   entities.StateVersion,
		CreatedAt: time.Now(),
		Turn:      1,
		TokenPool: pool,
		Market:    make(map[int][]*entities.Card),
		Decks:     make(map[int][]entities.Card),
	}
	for _, level := range entities.Levels {
		deck := entities.CloneCards(library[level])
		rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		s.Decks[level] = deck
	}
	RefillMarket(s)

	for i, seat := range seats {
		s.Players = append(s.Players, &entities.Player{
			ID:        seat.ID,
			Name:      seat.Name,
			AILevel:   seat.AILevel,
			IsStarter: i == 0,
			Hand:      []entities.Card{},
			Reserved:  []entities.Card{},
			Stacks:    map[string][]entities.Card{},
		})
	}
	return s, nil
}
