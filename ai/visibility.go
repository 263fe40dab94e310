package ai

import (
	"poke-splendor/entities"
	"poke-splendor/rules"
)

// PlayerView 某位玩家对 AI 可见的快照
type PlayerView struct {
	Index    int
	Name     string
	IsSelf   bool
	IsHuman  bool
	AILevel  int
	Trophies int
	Player   *entities.Player // 深拷贝
}

// VisibleState AI 决策唯一能读到的状态投影
type VisibleState struct {
	Turn         int
	Pool         entities.Tokens
	Market       map[int][]*entities.Card
	Decks        map[int][]entities.Card // 只包含档位允许看到的牌堆顺序
	Players      []PlayerView
	SelfIndex    int
	PerTurn      entities.PerTurn
	Availability rules.Availability
}

// BuildVisibleState 按档位过滤完整状态，所有卡牌都是拷贝
func BuildVisibleState(s *entities.GameState, selfIdx int, profile Profile) *VisibleState {
	v := &VisibleState{
		Turn:         s.Turn,
		Pool:         s.TokenPool,
		Market:       make(map[int][]*entities.Card, len(s.Market)),
		Decks:        map[int][]entities.Card{},
		SelfIndex:    selfIdx,
		PerTurn:      s.PerTurn,
		Availability: rules.GetAvailability(s),
	}
	for level, slots := range s.Market {
		cloned := make([]*entities.Card, len(slots))
		for i, card := range slots {
			if card != nil {
				c := card.Clone()
				cloned[i] = &c
			}
		}
		v.Market[level] = cloned
	}

	switch profile.Visibility {
	case VisibilityLevel1Seq:
		v.Decks[entities.LevelOne] = entities.CloneCards(s.Decks[entities.LevelOne])
	case VisibilityFullSeq:
		for _, level := range entities.Levels {
			v.Decks[level] = entities.CloneCards(s.Decks[level])
		}
	}

	canSeePlayers := profile.Visibility != VisibilitySelfOnly
	for i, p := range s.Players {
		isSelf := i == selfIdx
		if !isSelf && !canSeePlayers {
			continue
		}
		v.Players = append(v.Players, PlayerView{
			Index:    i,
			Name:     p.Name,
			IsSelf:   isSelf,
			IsHuman:  p.IsHuman(),
			AILevel:  p.AILevel,
			Trophies: rules.TotalTrophies(p),
			Player:   p.Clone(),
		})
	}
	return v
}

func (v *VisibleState) Self() *PlayerView {
	for i := range v.Players {
		if v.Players[i].IsSelf {
			return &v.Players[i]
		}
	}
	return nil
}

func (v *VisibleState) Opponents() []*PlayerView {
	var out []*PlayerView
	for i := range v.Players {
		if !v.Players[i].IsSelf {
			out = append(out, &v.Players[i])
		}
	}
	return out
}

// MarketCards 可见展示区中的卡，不传等级时返回全部
func (v *VisibleState) MarketCards(levels ...int) []rules.MarketCard {
	return rules.MarketCards(&entities.GameState{Market: v.Market}, levels...)
}
