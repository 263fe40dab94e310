package ai

import (
	"math"

	"poke-splendor/entities"
	"poke-splendor/rules"
)

// Unreachable 无法估算的回合数
const Unreachable = math.MaxInt32

// CostDeficit 每种颜色在折扣和已有标记之后还缺多少
func CostDeficit(p *entities.Player, card *entities.Card) entities.Tokens {
	var deficit entities.Tokens
	if p == nil || card == nil {
		return deficit
	}
	bonus := rules.RewardBonuses(p)
	for _, item := range card.Cost {
		if !item.Color.Valid() {
			continue
		}
		owned := p.Tokens[item.Color] + bonus[item.Color]
		deficit[item.Color] = max(deficit[item.Color], max(0, item.Number-owned))
	}
	return deficit
}

// TurnsToAfford 按每回合最多拿 3 个标记估算还要几回合才买得起
func TurnsToAfford(p *entities.Player, card *entities.Card, allowMaster bool) int {
	if p == nil || card == nil {
		return Unreachable
	}
	bonus := rules.RewardBonuses(p)
	flexible := 0
	if allowMaster {
		flexible = p.Tokens[entities.BallMaster] + bonus[entities.BallMaster]
	}
	required := 0
	for _, need := range CostDeficit(p, card) {
		use := min(flexible, need)
		flexible -= use
		required += need - use
	}
	if required <= 0 {
		return 0
	}
	space := entities.MaxTokens - rules.TotalTokens(p)
	gain := max(1, min(3, space))
	return (required + gain - 1) / gain
}

// WouldSpendMaster 购买这张卡是否得动用大师球
func WouldSpendMaster(p *entities.Player, card *entities.Card) bool {
	if p == nil || card == nil {
		return false
	}
	bonus := rules.RewardBonuses(p)
	master := p.Tokens[entities.BallMaster] + bonus[entities.BallMaster]
	return rules.Shortfall(p, card) > 0 && master > 0
}

// EstimateTurnsToWin 粗估某位玩家还要几回合达到 18 奖杯
func EstimateTurnsToWin(pv *PlayerView, v *VisibleState, ctx *Context) int {
	if pv == nil || v == nil {
		return Unreachable
	}
	p := pv.Player
	remain := max(0, entities.VictoryTrophies-pv.Trophies)
	if remain == 0 {
		return 0
	}

	bonusSum := 0
	for _, n := range rules.RewardBonuses(p) {
		bonusSum += n
	}
	bonusGain := float64(bonusSum) / 4
	recentRate := 0.0
	if v.Turn > 1 {
		recentRate = float64(pv.Trophies) / float64(v.Turn-1)
	}
	baseline := math.Max(1, math.Min(5, 1+bonusGain+recentRate))

	neutral := ctx.neutral()
	goal := SelectGoal(p, neutral)
	if goal == nil {
		goal = SelectReserveTarget(p, neutral)
	}
	bestPoint := 1
	turnsToCard := 2
	if goal != nil {
		bestPoint = max(1, goal.Card.Point)
		turnsToCard = TurnsToAfford(p, goal.Card, true) + 1
	}
	cycles := int(math.Ceil(float64(remain) / math.Max(float64(bestPoint), baseline)))
	return max(turnsToCard, cycles)
}
