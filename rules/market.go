package rules

import "poke-splendor/entities"

// MarketCard 展示区中的一张卡及其位置
type MarketCard struct {
	Level int
	Index int
	Card  *entities.Card
}

// DrawFromDeck 从牌堆顶（下标 0）抽一张，牌堆空时返回 nil
func DrawFromDeck(s *entities.GameState, level int) *entities.Card {
	deck := s.Decks[level]
	if len(deck) == 0 {
		return nil
	}
	card := deck[0]
	s.Decks[level] = deck[1:]
	return &card
}

func ensureSlots(s *entities.GameState, level int) {
	if s.Market == nil {
		s.Market = make(map[int][]*entities.Card)
	}
	size := entities.MarketSlotSizes[level]
	slots := s.Market[level]
	for len(slots) < size {
		slots = append(slots, nil)
	}
	s.Market[level] = slots
}

// RefillMarket 补满所有空格，牌堆抽空的格子保持为空
func RefillMarket(s *entities.GameState) {
	for _, level := range entities.Levels {
		ensureSlots(s, level)
		for i, card := range s.Market[level] {
			if card == nil {
				s.Market[level][i] = DrawFromDeck(s, level)
			}
		}
	}
}

func refillSlot(s *entities.GameState, level, idx int) {
	ensureSlots(s, level)
	if idx < 0 || idx >= len(s.Market[level]) {
		return
	}
	s.Market[level][idx] = DrawFromDeck(s, level)
}

// FindMarketCard 按 ID 在展示区查找
func FindMarketCard(s *entities.GameState, cardID string) (MarketCard, bool) {
	for _, level := range entities.Levels {
		for i, card := range s.Market[level] {
			if card != nil && card.ID == cardID {
				return MarketCard{Level: level, Index: i, Card: card}, true
			}
		}
	}
	return MarketCard{}, false
}

// MarketCards 列出指定等级展示区的全部卡，不传等级时列出全部
func MarketCards(s *entities.GameState, levels ...int) []MarketCard {
	if len(levels) == 0 {
		levels = entities.Levels
	}
	var out []MarketCard
	for _, level := range levels {
		for i, card := range s.Market[level] {
			if card != nil {
				out = append(out, MarketCard{Level: level, Index: i, Card: card})
			}
		}
	}
	return out
}

func findReserved(p *entities.Player, cardID string) int {
	for i, card := range p.Reserved {
		if card.ID == cardID {
			return i
		}
	}
	return -1
}
