package entities

import "time"

const (
	MaxTokens       = 10
	MaxReserved     = 3
	VictoryTrophies = 18

	DisabledAILevel = -1
	DefaultAILevel  = 2

	StateVersion = 1
)

const (
	LevelOne    = 1
	LevelTwo    = 2
	LevelThree  = 3
	LevelRare   = 4
	LevelLegend = 5
)

// Levels 所有牌堆等级，按展示顺序
var Levels = []int{LevelOne, LevelTwo, LevelThree, LevelRare, LevelLegend}

// MarketSlotSizes 每个等级展示区的格子数
var MarketSlotSizes = map[int]int{LevelOne: 4, LevelTwo: 4, LevelThree: 4, LevelRare: 1, LevelLegend: 1}

type PrimaryAction string

const (
	PrimaryNone    PrimaryAction = ""
	PrimaryTake3   PrimaryAction = "take3"
	PrimaryTake2   PrimaryAction = "take2"
	PrimaryReserve PrimaryAction = "reserve"
	PrimaryBuy     PrimaryAction = "buy"
	PrimarySkip    PrimaryAction = "skip"
)

type PerTurn struct {
	Evolved       bool          `json:"evolved"`
	PrimaryAction PrimaryAction `json:"primaryAction"`
}

// TokenReturn 待归还标记：玩家超过 10 个标记时产生
type TokenReturn struct {
	PlayerIndex int `json:"playerIndex"`
	Required    int `json:"required"`
}

// Standing 结算排名中的一项
type Standing struct {
	PlayerIndex int    `json:"playerIndex"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Penalty     int    `json:"penalty"`
	TrophyCards int    `json:"trophyCards"`
}

type GameState struct {
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"createdAt"`
	Turn               int             `json:"turn"`
	CurrentPlayerIndex int             `json:"currentPlayerIndex"`
	TokenPool          Tokens          `json:"tokenPool"`
	Market             map[int][]*Card `json:"market"`
	Decks              map[int][]Card  `json:"decks"`
	Players            []*Player       `json:"players"`
	PerTurn            PerTurn         `json:"perTurn"`
	PendingReturn      *TokenReturn    `json:"pendingReturn,omitempty"`
	EndTriggered       bool            `json:"endTriggered"`
	EndTriggerTurn     int             `json:"endTriggerTurn"`
	VictoryResolved    bool            `json:"victoryResolved"`
	Ranking            []Standing      `json:"ranking,omitempty"`
}

func (s *GameState) CurrentPlayer() *Player {
	if s == nil || s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex]
}

func (s *GameState) PlayerIndex(p *Player) int {
	for i, candidate := range s.Players {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Clone 深拷贝整个状态，快照和模拟器都基于拷贝操作
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	out.Market = make(map[int][]*Card, len(s.Market))
	for level, slots := range s.Market {
		cloned := make([]*Card, len(slots))
		for i, card := range slots {
			if card != nil {
				c := card.Clone()
				cloned[i] = &c
			}
		}
		out.Market[level] = cloned
	}
	out.Decks = make(map[int][]Card, len(s.Decks))
	for level, deck := range s.Decks {
		out.Decks[level] = CloneCards(deck)
	}
	out.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.Clone()
	}
	if s.PendingReturn != nil {
		pr := *s.PendingReturn
		out.PendingReturn = &pr
	}
	if s.Ranking != nil {
		out.Ranking = append([]Standing(nil), s.Ranking...)
	}
	return &out
}
