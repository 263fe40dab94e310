package rules

import "poke-splendor/entities"

func TotalTokens(p *entities.Player) int {
	if p == nil {
		return 0
	}
	return p.Tokens.Total()
}

// RewardBonuses 手牌提供的永久折扣，只统计当前形态
func RewardBonuses(p *entities.Player) entities.Tokens {
	var bonus entities.Tokens
	if p == nil {
		return bonus
	}
	for _, card := range p.Hand {
		if card.Reward != nil && card.Reward.Color.Valid() {
			bonus[card.Reward.Color] += card.Reward.Number
		}
	}
	return bonus
}

// scoredCards 手牌及其进化链上的全部卡牌
func scoredCards(p *entities.Player) []entities.Card {
	cards := make([]entities.Card, 0, len(p.Hand))
	for _, card := range p.Hand {
		cards = append(cards, card)
		cards = append(cards, p.StackOf(card.ID)...)
	}
	return cards
}

func TotalTrophies(p *entities.Player) int {
	if p == nil {
		return 0
	}
	sum := 0
	for _, c := range scoredCards(p) {
		if c.Point > 0 {
			sum += c.Point
		}
	}
	return sum
}

// TotalScore 含惩罚卡的净分
func TotalScore(p *entities.Player) int {
	if p == nil {
		return 0
	}
	sum := 0
	for _, c := range scoredCards(p) {
		sum += c.Point
	}
	return sum
}

func PenaltyCardCount(p *entities.Player) int {
	if p == nil {
		return 0
	}
	count := 0
	for _, c := range scoredCards(p) {
		if c.Point < 0 {
			count++
		}
	}
	return count
}

func TrophyCardCount(p *entities.Player) int {
	if p == nil {
		return 0
	}
	count := 0
	for _, c := range scoredCards(p) {
		if c.Point >= 0 {
			count++
		}
	}
	return count
}

// CanAfford 先用折扣，再用同色标记，缺口由大师球（标记+折扣）补足，最后支付卡面上的大师球费用
func CanAfford(p *entities.Player, card *entities.Card) bool {
	return affordable(p, card, true)
}

// CanAffordWithoutMaster 不借助大师球补缺口能否支付
func CanAffordWithoutMaster(p *entities.Player, card *entities.Card) bool {
	return affordable(p, card, false)
}

func affordable(p *entities.Player, card *entities.Card, wildcard bool) bool {
	if p == nil || card == nil {
		return false
	}
	need := card.Need()
	bonus := RewardBonuses(p)
	master := p.Tokens[entities.BallMaster] + bonus[entities.BallMaster]

	for _, c := range entities.RegularBalls {
		short := need[c] - bonus[c] - p.Tokens[c]
		if short <= 0 {
			continue
		}
		if !wildcard {
			return false
		}
		master -= short
		if master < 0 {
			return false
		}
	}
	return master-need[entities.BallMaster] >= 0
}

// Shortfall 折扣和同色标记之后仍缺的数量（不含大师球）
func Shortfall(p *entities.Player, card *entities.Card) int {
	if p == nil || card == nil {
		return 0
	}
	bonus := RewardBonuses(p)
	total := 0
	for _, item := range card.Cost {
		if !item.Color.Valid() {
			continue
		}
		owned := p.Tokens[item.Color] + bonus[item.Color]
		total += max(0, item.Number-owned)
	}
	return total
}

func CanTakeTwoSame(s *entities.GameState, color entities.Ball) bool {
	return color.Regular() && s.TokenPool[color] >= 4
}

func CanAffordEvolution(p *entities.Player, base *entities.Card) bool {
	if p == nil || base == nil || base.Evolution == nil {
		return false
	}
	cost := base.Evolution.Cost
	if !cost.Color.Valid() {
		return false
	}
	bonus := RewardBonuses(p)
	master := p.Tokens[entities.BallMaster] + bonus[entities.BallMaster]
	if cost.Color == entities.BallMaster {
		return master >= cost.Number
	}
	remaining := cost.Number - bonus[cost.Color] - p.Tokens[cost.Color]
	if remaining <= 0 {
		return true
	}
	return master >= remaining
}

// EvolutionBase 找到能进化成 target 且付得起进化费用的第一张手牌，返回下标
func EvolutionBase(p *entities.Player, target *entities.Card) int {
	if p == nil || target == nil {
		return -1
	}
	for i := range p.Hand {
		base := &p.Hand[i]
		if base.Evolution != nil && base.Evolution.Name == target.Name && CanAffordEvolution(p, base) {
			return i
		}
	}
	return -1
}

func hasEvolutionBase(p *entities.Player, target *entities.Card) bool {
	for _, base := range p.Hand {
		if base.Evolution != nil && base.Evolution.Name == target.Name {
			return true
		}
	}
	return false
}
