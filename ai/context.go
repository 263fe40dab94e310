package ai

import (
	"poke-splendor/entities"
	"poke-splendor/rules"
)

// Rival 对手及其预计获胜回合
type Rival struct {
	View  *PlayerView
	Turns int
}

// Context 一次决策的上下文，只读
type Context struct {
	State        *VisibleState
	Profile      Profile
	Level        int
	Depth        int
	KnownDecks   map[int][]entities.Card
	SelfTurns    int
	Rivals       []Rival
	Danger       *Rival
	ThreatWindow int
	MustBlock    bool

	isNeutral bool
}

// NewContext 估算各方获胜节奏并找出最危险的对手
func NewContext(v *VisibleState, profile Profile) *Context {
	ctx := &Context{
		State:      v,
		Profile:    profile,
		Level:      profile.Level,
		Depth:      profile.Depth,
		KnownDecks: v.Decks,
	}
	ctx.SelfTurns = EstimateTurnsToWin(v.Self(), v, ctx)
	for _, opp := range v.Opponents() {
		ctx.Rivals = append(ctx.Rivals, Rival{View: opp, Turns: EstimateTurnsToWin(opp, v, ctx)})
	}
	for i := range ctx.Rivals {
		r := &ctx.Rivals[i]
		if ctx.Danger == nil || r.Turns < ctx.Danger.Turns ||
			(r.Turns == ctx.Danger.Turns && r.View.Trophies > ctx.Danger.View.Trophies) {
			ctx.Danger = r
		}
	}

	ctx.ThreatWindow = min(ctx.Depth+1, 4)
	if d := ctx.Danger; d != nil && ctx.Depth > 0 {
		ctx.MustBlock = d.Turns <= ctx.SelfTurns ||
			entities.VictoryTrophies-d.View.Trophies <= ctx.ThreatWindow ||
			d.Turns <= ctx.ThreatWindow
	}
	return ctx
}

// neutral 估算用的上下文：不考虑对手，只保留已知牌堆
func (c *Context) neutral() *Context {
	return &Context{
		State:      c.State,
		Profile:    c.Profile,
		Level:      c.Level,
		Depth:      c.Depth,
		KnownDecks: c.KnownDecks,
		isNeutral:  true,
	}
}

func (c *Context) Self() *entities.Player {
	if pv := c.State.Self(); pv != nil {
		return pv.Player
	}
	return nil
}

// DangerPlayer 最危险对手的可见拷贝
func (c *Context) DangerPlayer() *entities.Player {
	if c.Danger == nil {
		return nil
	}
	return c.Danger.View.Player
}

// ThreatBonus 对手买得起或快要买得起的高分卡额外加分
func (c *Context) ThreatBonus(card *entities.Card) float64 {
	if c.isNeutral || c.Level < 1 || card == nil {
		return 0
	}
	bonus := 0.0
	for _, r := range c.Rivals {
		if rules.CanAfford(r.View.Player, card) {
			bonus += 40 + float64(card.Point)*15
		} else if r.Turns <= c.Depth+1 && card.Point >= 2 {
			bonus += 20
		}
	}
	return bonus
}

// FuturePromise 下一张翻出来的牌更好时扣分
func (c *Context) FuturePromise(card *entities.Card) float64 {
	if card == nil {
		return 0
	}
	deck := c.KnownDecks[card.Level]
	if len(deck) == 0 {
		return 0
	}
	next := deck[0]
	if next.Point != 0 && next.Point > card.Point {
		return -5
	}
	return 5
}

// OpponentTurnDistance 最快的对手还要几回合买得起
func (c *Context) OpponentTurnDistance(card *entities.Card) int {
	if c.isNeutral || card == nil {
		return Unreachable
	}
	best := Unreachable
	for _, r := range c.Rivals {
		best = min(best, TurnsToAfford(r.View.Player, card, true))
	}
	return best
}
