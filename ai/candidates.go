package ai

import (
	"sort"

	"poke-splendor/entities"
	"poke-splendor/rules"
)

// CardScore 卡牌对玩家的基础价值，非中性上下文再叠加威胁和翻牌预期
func CardScore(p *entities.Player, card *entities.Card, ctx *Context) float64 {
	if card == nil {
		return 0
	}
	bonus := rules.RewardBonuses(p)
	lack := 0
	for _, item := range card.Cost {
		if !item.Color.Valid() {
			continue
		}
		own := 0
		if p != nil {
			own = p.Tokens[item.Color] + bonus[item.Color]
		}
		lack += max(0, item.Number-own)
	}
	score := float64(card.Point*120 + card.RewardNumber()*12 - len(card.Cost)*2 - lack*8)
	if ctx != nil {
		score += ctx.ThreatBonus(card) + ctx.FuturePromise(card)
	}
	return score
}

// bestBy 返回得分最高的候选，同分取先出现的
func bestBy(candidates []*Target, score func(*Target) float64) *Target {
	var best *Target
	bestScore := 0.0
	for _, t := range candidates {
		s := score(t)
		if best == nil || s > bestScore {
			best, bestScore = t, s
		}
	}
	return best
}

func marketTargets(v *VisibleState, levels ...int) []*Target {
	var out []*Target
	for _, mc := range v.MarketCards(levels...) {
		out = append(out, &Target{Source: SourceMarket, Level: mc.Level, Card: mc.Card})
	}
	return out
}

func reservedTargets(p *entities.Player) []*Target {
	out := make([]*Target, 0, len(p.Reserved))
	for i := range p.Reserved {
		c := &p.Reserved[i]
		out = append(out, &Target{Source: SourceReserved, Level: c.Level, Card: c})
	}
	return out
}

func SelectBuyTarget(p *entities.Player, ctx *Context) *Target {
	var candidates []*Target
	for _, t := range append(reservedTargets(p), marketTargets(ctx.State)...) {
		if rules.CanAfford(p, t.Card) {
			candidates = append(candidates, t)
		}
	}
	return bestBy(candidates, func(t *Target) float64 { return CardScore(p, t.Card, ctx) })
}

// SelectEvolveTarget 高难度不在标记少于 6 个时用带费用的进化浪费节奏
func SelectEvolveTarget(p *entities.Player, ctx *Context) *Target {
	var candidates []*Target
	for _, t := range append(marketTargets(ctx.State), reservedTargets(p)...) {
		if rules.EvolutionBase(p, t.Card) < 0 {
			continue
		}
		if ctx.Level >= 2 && t.Card.CostTotal() > 0 && rules.TotalTokens(p) < 6 {
			continue
		}
		candidates = append(candidates, t)
	}
	return bestBy(candidates, func(t *Target) float64 { return CardScore(p, t.Card, ctx) })
}

func ReserveScore(p *entities.Player, card *entities.Card, ctx *Context) float64 {
	score := CardScore(p, card, ctx)
	if len(p.Reserved) >= 2 && rules.TotalTrophies(p) < 12 {
		score -= 30
	}
	if ctx.Level >= 2 && card.Level <= entities.LevelOne && ctx.State.Pool[entities.BallMaster] <= 1 {
		score -= 15
	}
	if ctx.Level == 0 {
		score -= 10
	}
	switch dist := ctx.OpponentTurnDistance(card); {
	case dist <= 1:
		score += 45
	case dist <= 2:
		score += 25
	}
	return score
}

func SelectReserveTarget(p *entities.Player, ctx *Context) *Target {
	candidates := marketTargets(ctx.State, entities.LevelOne, entities.LevelTwo, entities.LevelThree)
	return bestBy(candidates, func(t *Target) float64 { return ReserveScore(p, t.Card, ctx) })
}

// SelectGoal 综合价值与所需回合挑选的长期目标
func SelectGoal(p *entities.Player, ctx *Context) *Target {
	candidates := append(reservedTargets(p), marketTargets(ctx.State)...)
	weight := 15.0
	if ctx.Level >= 3 {
		weight = 10
	}
	return bestBy(candidates, func(t *Target) float64 {
		score := CardScore(p, t.Card, ctx) - float64(TurnsToAfford(p, t.Card, ctx.Level >= 2))*weight
		switch dist := ctx.OpponentTurnDistance(t.Card); {
		case dist <= 1:
			score += 40
		case dist <= 2:
			score += 20
		case dist <= 3:
			score += 8
		}
		return score
	})
}

func ShouldReserve(p *entities.Player, ctx *Context, target *Target) bool {
	if target == nil {
		return false
	}
	reserved := len(p.Reserved)
	if reserved >= entities.MaxReserved {
		return false
	}
	if ctx.OpponentTurnDistance(target.Card) > 1 && reserved >= 2 && rules.TotalTrophies(p) < 15 {
		return false
	}
	if reserved >= 1 && ctx.Level == 0 {
		return false
	}
	if ctx.Profile.Constraints.MustKeepReserveSlot && reserved >= 2 {
		return false
	}
	if ctx.Level >= 2 && ctx.State.Pool[entities.BallMaster] <= 0 && reserved >= 2 {
		return false
	}
	if ctx.Profile.PreferCapture && reserved >= 1 && ctx.State.Availability.Buy {
		for _, mc := range ctx.State.MarketCards() {
			if rules.CanAfford(p, mc.Card) {
				return false
			}
		}
	}
	return true
}

// SelectReveal 已知牌堆顺序时，先买走或保留当前这张好让下一张翻出来（只有进阶以上）
func SelectReveal(p *entities.Player, ctx *Context) *Decision {
	if ctx.Level < 3 {
		return nil
	}
	avail := ctx.State.Availability
	danger := ctx.DangerPlayer()
	var best *Decision
	for _, t := range marketTargets(ctx.State, entities.LevelOne, entities.LevelTwo, entities.LevelThree) {
		deck := ctx.KnownDecks[t.Level]
		if len(deck) == 0 {
			continue
		}
		next := deck[0]
		pressure := CardScore(p, &next, ctx) - CardScore(p, t.Card, ctx)
		threat := next.Point >= 3
		if ctx.MustBlock && danger != nil && TurnsToAfford(danger, &next, true) <= 2 {
			threat = true
		}
		if pressure < 8 && ctx.Level < 4 && !threat {
			continue
		}
		if pressure < 14 && ctx.MustBlock && !threat {
			continue
		}
		canBuy := avail.Buy && rules.CanAfford(p, t.Card)
		// 保留区满时保留只拿大师球，目标卡留在展示区，翻不出下一张
		canReserve := avail.Reserve && len(p.Reserved) < entities.MaxReserved
		if !canBuy && !canReserve {
			continue
		}

		d := &Decision{Kind: KindReserve, Target: t, Score: pressure}
		if canBuy {
			d.Kind = KindBuy
			d.Score += 10
		}
		if threat {
			d.Score += 20
		}
		d.Meta = PlanMeta{RevealNext: &next, OpponentThreat: threat}
		if best == nil || d.Score > best.Score {
			best = d
		}
	}
	return best
}

// rankColors 缺口大的优先，其次自己持有少的，再次供应多的
func rankColors(p *entities.Player, card *entities.Card, pool entities.Tokens, colors []entities.Ball) {
	need := CostDeficit(p, card)
	bonus := rules.RewardBonuses(p)
	sort.SliceStable(colors, func(i, j int) bool {
		a, b := colors[i], colors[j]
		if need[a] != need[b] {
			return need[a] > need[b]
		}
		ownA, ownB := p.Tokens[a]+bonus[a], p.Tokens[b]+bonus[b]
		if ownA != ownB {
			return ownA < ownB
		}
		return pool[a] > pool[b]
	})
}

func PickTake3Colors(p *entities.Player, card *entities.Card, ctx *Context) []entities.Ball {
	pool := ctx.State.Pool
	var available []entities.Ball
	for _, c := range entities.RegularBalls {
		if pool[c] > 0 {
			available = append(available, c)
		}
	}
	if len(available) == 0 {
		return nil
	}
	rankColors(p, card, pool, available)
	picked := available[:min(3, len(available))]
	if ctx.Level == 0 {
		reversed := make([]entities.Ball, len(picked))
		for i, c := range picked {
			reversed[len(picked)-1-i] = c
		}
		return reversed
	}
	return picked
}

func PickTake2Color(p *entities.Player, card *entities.Card, ctx *Context) (entities.Ball, bool) {
	pool := ctx.State.Pool
	var options []entities.Ball
	for _, c := range entities.RegularBalls {
		if pool[c] >= 4 {
			options = append(options, c)
		}
	}
	if len(options) == 0 {
		return 0, false
	}
	rankColors(p, card, pool, options)
	return options[0], true
}
