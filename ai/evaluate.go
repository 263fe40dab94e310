package ai

import (
	"poke-splendor/entities"
	"poke-splendor/rules"
)

type PlanType string

const (
	PlanBlock   PlanType = "block"
	PlanReveal  PlanType = "reveal"
	PlanEconomy PlanType = "economy"
	PlanDevelop PlanType = "develop"
)

type Evaluation struct {
	SelfProgress  float64
	OpponentDelay float64
	Risk          float64
	Efficiency    float64
}

// Plan 一个通过约束检查的决策及其评分
type Plan struct {
	Decision        *Decision
	Type            PlanType
	ProjectedSelf   int
	OpponentImpact  int
	DelayOpponentBy int
	UsesMaster      bool
	SelfGain        int
	Eval            Evaluation
	Composite       float64
}

func DetectPlanType(d *Decision, ctx *Context) PlanType {
	if d == nil {
		return PlanDevelop
	}
	if d.Meta.OpponentThreat {
		return PlanBlock
	}
	if card := d.card(); card != nil && ctx.MustBlock {
		if dist := ctx.OpponentTurnDistance(card); dist != Unreachable && dist <= ctx.Depth+1 {
			return PlanBlock
		}
	}
	if d.Meta.RevealNext != nil {
		return PlanReveal
	}
	if d.Kind == KindTake3 || d.Kind == KindTake2 {
		return PlanEconomy
	}
	return PlanDevelop
}

// OpponentImpact 这个决策能让最危险对手慢多少：目标卡或即将翻出的卡对手越近越高
func OpponentImpact(d *Decision, ctx *Context) int {
	cards := make([]*entities.Card, 0, 2)
	if c := d.card(); c != nil {
		cards = append(cards, c)
	}
	if d.Meta.RevealNext != nil {
		cards = append(cards, d.Meta.RevealNext)
	}
	if len(cards) == 0 {
		return 0
	}
	danger := ctx.DangerPlayer()
	best := Unreachable
	for _, c := range cards {
		if danger != nil {
			best = min(best, TurnsToAfford(danger, c, true))
		} else {
			best = min(best, ctx.OpponentTurnDistance(c))
		}
	}
	switch {
	case best <= 1:
		return 2
	case best <= 2:
		return 1
	}
	return 0
}

// EvaluatePlan 违反档位约束时返回 nil
func EvaluatePlan(d *Decision, p *entities.Player, ctx *Context, planType PlanType) *Plan {
	if d == nil || p == nil {
		return nil
	}
	cons := ctx.Profile.Constraints
	card := d.card()
	usesMaster := card != nil && WouldSpendMaster(p, card)

	if planType == PlanBlock && !cons.CanBlock {
		return nil
	}
	if d.Kind == KindReserve && cons.MustKeepReserveSlot && len(p.Reserved) >= 2 {
		return nil
	}
	if d.Kind == KindReserve && !cons.CanPreemptReserve && ctx.OpponentTurnDistance(card) > ctx.Depth {
		return nil
	}
	if usesMaster && !cons.AggressiveMaster {
		mustUseMaster := d.Kind == KindBuy && !rules.CanAffordWithoutMaster(p, card)
		if !mustUseMaster {
			return nil
		}
	}

	selfGain := 0
	turnsToAfford := 0
	if card != nil {
		selfGain = card.Point
		turnsToAfford = TurnsToAfford(p, card, cons.AggressiveMaster)
	}
	selfTurns := ctx.SelfTurns
	if selfTurns == Unreachable {
		selfTurns = 8
	}
	projectedSelf := selfTurns
	if selfGain > 0 {
		projectedSelf = max(0, selfTurns-1)
	}
	impact := OpponentImpact(d, ctx)
	delay := 0
	if ctx.Danger != nil {
		delay = impact
	}

	tempo := float64(12 - min(6, ctx.Depth*2))
	eval := Evaluation{
		SelfProgress:  float64(selfGain*80) - float64(turnsToAfford)*tempo + d.Score,
		OpponentDelay: float64(delay*40 + impact*30),
	}
	if planType == PlanBlock {
		eval.OpponentDelay += 30
	}

	if d.Meta.Overflow {
		eval.Risk += 30
	}
	if usesMaster {
		if cons.AggressiveMaster {
			eval.Risk += 6
		} else {
			eval.Risk += 20
		}
	}
	if d.Kind == KindReserve {
		if cons.MustKeepReserveSlot && len(p.Reserved) >= 1 {
			eval.Risk += 10
		}
		if ctx.Profile.PreferCapture {
			eval.Risk += float64(20 + max(0, len(p.Reserved)-1)*10)
		}
	}

	switch d.Kind {
	case KindTake3, KindTake2:
		eval.Efficiency = float64(10 + len(d.Colors)*5)
	case KindBuy, KindEvolve:
		eval.Efficiency = float64(20 + card.RewardNumber()*4)
	case KindReserve:
		eval.Efficiency = 8
	}

	return &Plan{
		Decision:        d,
		Type:            planType,
		ProjectedSelf:   projectedSelf,
		OpponentImpact:  impact,
		DelayOpponentBy: delay,
		UsesMaster:      usesMaster,
		SelfGain:        selfGain,
		Eval:            eval,
		Composite:       eval.SelfProgress + eval.OpponentDelay + eval.Efficiency - eval.Risk,
	}
}
