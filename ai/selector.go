package ai

import (
	"math"
	"sort"
	"time"

	"poke-splendor/entities"
	"poke-splendor/rules"

	"golang.org/x/exp/rand"
)

const tieEpsilon = 1e-6

// Selector 从候选决策中按档位约束挑出最终行动
type Selector struct {
	rng *rand.Rand
}

// NewSelector rng 只用于同分决策的随机选择，传 nil 时按当前时间播种
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return &Selector{rng: rng}
}

// selection 一次选择的中间结果
type selection struct {
	ctx        *Context
	decisions  []*Decision
	plans      []*Plan
	candidates []*Plan
}

// Choose 为当前玩家挑选主要行动或进化；没有可行决策时返回 nil
func (sel *Selector) Choose(s *entities.GameState, level int) *Decision {
	profile, ok := ProfileFor(level)
	if !ok {
		return nil
	}
	v := BuildVisibleState(s, s.CurrentPlayerIndex, profile)
	return sel.pick(plan(v, profile))
}

func (sel *Selector) pick(r *selection) *Decision {
	if len(r.decisions) == 0 {
		return nil
	}
	if len(r.candidates) == 0 {
		best := r.decisions[0]
		for _, d := range r.decisions[1:] {
			if d.Score > best.Score {
				best = d
			}
		}
		return best
	}
	top := r.candidates[0]
	var ties []*Plan
	for _, p := range r.candidates {
		sameClass := !r.ctx.MustBlock || (p.Type == PlanBlock) == (top.Type == PlanBlock)
		if sameClass && math.Abs(p.Composite-top.Composite) < tieEpsilon {
			ties = append(ties, p)
		}
	}
	if len(ties) > 1 {
		return ties[sel.rng.Intn(len(ties))].Decision
	}
	return top.Decision
}

// gatherDecisions 按可用行动生成候选
func gatherDecisions(p *entities.Player, ctx *Context) []*Decision {
	avail := ctx.State.Availability
	var decisions []*Decision

	if avail.Buy {
		if t := SelectBuyTarget(p, ctx); t != nil {
			decisions = append(decisions, &Decision{Kind: KindBuy, Target: t, Score: CardScore(p, t.Card, ctx) + 20})
		}
	}
	if avail.Evolve {
		if t := SelectEvolveTarget(p, ctx); t != nil {
			decisions = append(decisions, &Decision{Kind: KindEvolve, Target: t, Score: CardScore(p, t.Card, ctx)})
		}
	}
	if avail.Reserve {
		if t := SelectReserveTarget(p, ctx); ShouldReserve(p, ctx, t) {
			decisions = append(decisions, &Decision{Kind: KindReserve, Target: t, Score: ReserveScore(p, t.Card, ctx) - 5})
		}
	}
	if d := SelectReveal(p, ctx); d != nil {
		decisions = append(decisions, d)
	}

	var planned *entities.Card
	if goal := SelectGoal(p, ctx); goal != nil {
		planned = goal.Card
	} else if len(decisions) > 0 {
		planned = decisions[0].card()
	} else if t := SelectReserveTarget(p, ctx); t != nil {
		planned = t.Card
	}

	tokens := rules.TotalTokens(p)
	if avail.Take3 {
		if colors := PickTake3Colors(p, planned, ctx); len(colors) > 0 {
			decisions = append(decisions, &Decision{
				Kind:   KindTake3,
				Colors: colors,
				Score:  float64(10 + len(colors)),
				Meta:   PlanMeta{Overflow: tokens+len(colors) > entities.MaxTokens},
			})
		}
	}
	if avail.Take2 {
		if color, ok := PickTake2Color(p, planned, ctx); ok {
			decisions = append(decisions, &Decision{
				Kind:   KindTake2,
				Colors: []entities.Ball{color},
				Score:  9,
				Meta:   PlanMeta{Overflow: tokens+2 > entities.MaxTokens},
			})
		}
	}
	return decisions
}

func evaluateAll(decisions []*Decision, p *entities.Player, ctx *Context) []*Plan {
	var plans []*Plan
	for _, d := range decisions {
		if plan := EvaluatePlan(d, p, ctx, DetectPlanType(d, ctx)); plan != nil {
			plans = append(plans, plan)
		}
	}
	return plans
}

// plan 生成、评估并排序候选；candidates[0] 即首选
func plan(v *VisibleState, profile Profile) *selection {
	ctx := NewContext(v, profile)
	r := &selection{ctx: ctx}
	p := ctx.Self()
	if p == nil {
		return r
	}

	r.decisions = gatherDecisions(p, ctx)
	if len(r.decisions) == 0 {
		return r
	}
	r.plans = evaluateAll(r.decisions, p, ctx)
	if len(r.plans) == 0 && ctx.State.Availability.Take() {
		// 全被否决时允许溢出标记再评估一次
		for _, d := range r.decisions {
			d.Meta.Overflow = true
		}
		r.plans = evaluateAll(r.decisions, p, ctx)
	}
	if len(r.plans) == 0 {
		return r
	}

	r.candidates = withinSacrifice(r.plans, profile.AllowedSacrifice)
	rankPlans(r.candidates, ctx.MustBlock)
	return r
}

// withinSacrifice 去掉为阻挡而牺牲过多自身进度的方案，40 分约为 1 个单位
func withinSacrifice(plans []*Plan, allowed int) []*Plan {
	if len(plans) == 0 {
		return nil
	}
	bestSelf := plans[0]
	for _, pl := range plans[1:] {
		if pl.Eval.SelfProgress > bestSelf.Eval.SelfProgress {
			bestSelf = pl
		}
	}
	var out []*Plan
	for _, pl := range plans {
		sacrifice := (bestSelf.Eval.SelfProgress - pl.Eval.SelfProgress) / 40
		if pl.Type == PlanBlock && sacrifice > float64(allowed) {
			continue
		}
		out = append(out, pl)
	}
	if len(out) == 0 {
		out = append(out, plans...)
	}
	return out
}

// rankPlans 必须阻挡时阻挡方案整体排前，其余按综合分
func rankPlans(plans []*Plan, mustBlock bool) {
	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if mustBlock && (a.Type == PlanBlock) != (b.Type == PlanBlock) {
			return a.Type == PlanBlock
		}
		return a.Composite > b.Composite
	})
}
