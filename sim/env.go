package sim

import (
	"errors"
	"fmt"

	"poke-splendor/entities"
	"poke-splendor/rules"

	"golang.org/x/exp/rand"
)

var ErrNotStarted = errors.New("先调用 Reset 开始一局")

type ActionType string

const (
	ActTake3          ActionType = "take3"
	ActTake2          ActionType = "take2"
	ActReserveMarket  ActionType = "reserve_market"
	ActReserveMaster  ActionType = "reserve_master"
	ActBuyMarket      ActionType = "buy_market"
	ActBuyReserved    ActionType = "buy_reserved"
	ActEvolveMarket   ActionType = "evolve_market"
	ActEvolveReserved ActionType = "evolve_reserved"
	ActReturnTokens   ActionType = "return_tokens"
	ActEndTurn        ActionType = "end_turn"
	ActSkipPrimary    ActionType = "skip_primary"
)

// Action 一个原子动作，不是完整回合
type Action struct {
	Type   ActionType      `json:"type"`
	Colors []entities.Ball `json:"colors,omitempty"`
	CardID string          `json:"cardId,omitempty"`
	Level  int             `json:"level,omitempty"`
	Index  int             `json:"index,omitempty"`
}

type StepResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
	Done    bool   `json:"done"`
	Rewards []int  `json:"rewards"`
}

// Env 无界面的对局环境，供自博弈和外部智能体使用
type Env struct {
	library map[int][]entities.Card
	state   *entities.GameState
}

func NewEnv(library map[int][]entities.Card) *Env {
	return &Env{library: library}
}

// Reset 用种子开新局，同一种子同一座位得到同样的牌序
func (e *Env) Reset(seed uint64, seats []rules.Seat) error {
	s, err := rules.NewGame(e.library, seats, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("开局失败: %w", err)
	}
	e.state = s
	return nil
}

// State 当前状态，调用方不应直接修改
func (e *Env) State() *entities.GameState {
	return e.state
}

func (e *Env) Done() bool {
	return e.state != nil && e.state.VictoryResolved
}

func (e *Env) Ranking() []entities.Standing {
	if e.state == nil {
		return nil
	}
	return e.state.Ranking
}

// Rewards 结算后每位玩家的奖杯数，未结算时全为 0
func (e *Env) Rewards() []int {
	if e.state == nil {
		return nil
	}
	out := make([]int, len(e.state.Players))
	if !e.state.VictoryResolved {
		return out
	}
	for i, p := range e.state.Players {
		out[i] = rules.TotalTrophies(p)
	}
	return out
}

// Step 执行一个动作，不合法的动作不改变状态并给出原因
func (e *Env) Step(a Action) (StepResult, error) {
	if e.state == nil {
		return StepResult{}, ErrNotStarted
	}
	if e.Done() {
		return StepResult{Done: true, Rewards: e.Rewards(), Reason: rules.ErrGameOver.Error()}, nil
	}

	res := StepResult{Applied: true}
	if err := e.apply(a); err != nil {
		res.Applied = false
		res.Reason = err.Error()
	}
	res.Done = e.Done()
	res.Rewards = e.Rewards()
	return res, nil
}

func (e *Env) apply(a Action) error {
	s := e.state
	switch a.Type {
	case ActTake3:
		return rules.Take3(s, a.Colors)
	case ActTake2:
		if len(a.Colors) == 0 {
			return rules.ErrInvalidSelection
		}
		return rules.Take2(s, a.Colors[0])
	case ActReserveMarket:
		if len(s.CurrentPlayer().Reserved) >= entities.MaxReserved {
			return rules.ErrReserveFull
		}
		if a.CardID == "" {
			return rules.ErrCardNotFound
		}
		return rules.Reserve(s, a.CardID)
	case ActReserveMaster:
		if len(s.CurrentPlayer().Reserved) < entities.MaxReserved {
			return rules.ErrInvalidSelection
		}
		return rules.Reserve(s, "")
	case ActBuyMarket, ActBuyReserved:
		if !e.sourceMatches(a) {
			return rules.ErrCardNotFound
		}
		return rules.Buy(s, a.CardID)
	case ActEvolveMarket, ActEvolveReserved:
		if !e.sourceMatches(a) {
			return rules.ErrCardNotFound
		}
		return rules.Evolve(s, a.CardID)
	case ActReturnTokens:
		if len(a.Colors) == 0 {
			return rules.ErrInvalidSelection
		}
		return rules.ReturnOne(s, a.Colors[0])
	case ActEndTurn:
		return rules.EndTurn(s)
	case ActSkipPrimary:
		return rules.SkipPrimary(s)
	}
	return fmt.Errorf("未知动作 %q", a.Type)
}

// sourceMatches 市场动作必须指向展示区的卡，保留区动作必须指向自己的保留卡
func (e *Env) sourceMatches(a Action) bool {
	_, inMarket := rules.FindMarketCard(e.state, a.CardID)
	switch a.Type {
	case ActBuyMarket, ActEvolveMarket:
		return inMarket
	}
	for _, c := range e.state.CurrentPlayer().Reserved {
		if c.ID == a.CardID {
			return true
		}
	}
	return false
}
