package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"poke-splendor/entities"
	"poke-splendor/logger"
	"poke-splendor/rules"

	"golang.org/x/exp/rand"
)

const maxTurnSteps = 15

var (
	ErrSafetyExhausted = errors.New("AI 回合超过安全步数仍未结束")
	ErrUnknownDecision = errors.New("未知的 AI 决策类型")
)

// StepKind 驱动器每一步做了什么
type StepKind string

const (
	StepReturnTokens StepKind = "return_tokens"
	StepDecision     StepKind = "decision"
	StepForcedSkip   StepKind = "forced_skip"
	StepEndTurn      StepKind = "end_turn"
)

type Step struct {
	Seat     int
	Kind     StepKind
	Decision *Decision
	Returned entities.Tokens
}

// Driver 跑完一个 AI 座位的回合
type Driver struct {
	Selector *Selector
	// Pace 每一步之后调用，可用来广播和延时，返回错误会中断回合
	Pace func(ctx context.Context, s *entities.GameState, step Step) error
}

func NewDriver(rng *rand.Rand) *Driver {
	return &Driver{Selector: NewSelector(rng)}
}

// RunTurn 从当前座位开始执行，座位变化、轮到真人或游戏结算时返回
func (d *Driver) RunTurn(ctx context.Context, s *entities.GameState) ([]Step, error) {
	var steps []Step
	seat := s.CurrentPlayerIndex

	for i := 0; i < maxTurnSteps; i++ {
		if err := ctx.Err(); err != nil {
			return steps, err
		}
		p := s.CurrentPlayer()
		if p == nil || p.IsHuman() || s.VictoryResolved {
			return steps, nil
		}

		step, err := d.advance(s, p)
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)

		if d.Pace != nil {
			if err := d.Pace(ctx, s, step); err != nil {
				return steps, err
			}
		}
		if s.CurrentPlayerIndex != seat || s.VictoryResolved {
			return steps, nil
		}
	}

	logger.L.Errorw("❌ AI 回合卡住", "seat", seat, "turn", s.Turn, "primary", s.PerTurn.PrimaryAction, "steps", len(steps))
	return steps, fmt.Errorf("%w: seat=%d turn=%d", ErrSafetyExhausted, seat, s.Turn)
}

func (d *Driver) advance(s *entities.GameState, p *entities.Player) (Step, error) {
	seat := s.CurrentPlayerIndex
	if pr := s.PendingReturn; pr != nil && pr.PlayerIndex == seat {
		return Step{Seat: seat, Kind: StepReturnTokens, Returned: AutoReturnTokens(s)}, nil
	}

	if s.PerTurn.PrimaryAction != entities.PrimaryNone {
		err := rules.EndTurn(s)
		if errors.Is(err, rules.ErrReturnPending) {
			return Step{Seat: seat, Kind: StepEndTurn}, nil
		}
		if err != nil {
			return Step{}, fmt.Errorf("AI 结束回合失败: %w", err)
		}
		return Step{Seat: seat, Kind: StepEndTurn}, nil
	}

	decision := d.Selector.Choose(s, p.AILevel)
	if decision == nil {
		return d.forceSkip(s, seat)
	}
	if err := Execute(s, decision); err != nil {
		logger.L.Warnw("⚠️ AI 决策执行失败，改为跳过", "seat", seat, "decision", decision.String(), "err", err)
		return d.forceSkip(s, seat)
	}
	return Step{Seat: seat, Kind: StepDecision, Decision: decision}, nil
}

// forceSkip 没有可行动作时跳过主要行动并结束回合，保证回合总能推进
func (d *Driver) forceSkip(s *entities.GameState, seat int) (Step, error) {
	if err := rules.SkipPrimary(s); err != nil && !errors.Is(err, rules.ErrPrimaryLocked) {
		return Step{}, fmt.Errorf("AI 跳过失败: %w", err)
	}
	if err := rules.EndTurn(s); err != nil && !errors.Is(err, rules.ErrReturnPending) {
		return Step{}, fmt.Errorf("AI 结束回合失败: %w", err)
	}
	return Step{Seat: seat, Kind: StepForcedSkip}, nil
}

// Execute 把决策交给规则层执行
func Execute(s *entities.GameState, d *Decision) error {
	if d == nil {
		return ErrUnknownDecision
	}
	cardID := ""
	if c := d.card(); c != nil {
		cardID = c.ID
	}
	switch d.Kind {
	case KindBuy:
		return rules.Buy(s, cardID)
	case KindEvolve:
		return rules.Evolve(s, cardID)
	case KindReserve:
		return rules.Reserve(s, cardID)
	case KindTake3:
		return rules.Take3(s, d.Colors)
	case KindTake2:
		if len(d.Colors) == 0 {
			return fmt.Errorf("%w: take2 缺少颜色", rules.ErrInvalidSelection)
		}
		return rules.Take2(s, d.Colors[0])
	}
	return fmt.Errorf("%w: %q", ErrUnknownDecision, d.Kind)
}

// AutoReturnTokens 逐个归还持有最多的颜色，同数量时先还自己更富余的颜色
func AutoReturnTokens(s *entities.GameState) entities.Tokens {
	var returned entities.Tokens
	pr := s.PendingReturn
	if pr == nil || pr.PlayerIndex != s.CurrentPlayerIndex {
		return returned
	}
	p := s.Players[pr.PlayerIndex]
	bonus := rules.RewardBonuses(p)

	for s.PendingReturn != nil {
		colors := make([]entities.Ball, 0, entities.BallCount)
		for c := entities.BallPoke; c <= entities.BallMaster; c++ {
			if p.Tokens[c] > 0 {
				colors = append(colors, c)
			}
		}
		if len(colors) == 0 {
			break
		}
		sort.SliceStable(colors, func(i, j int) bool {
			a, b := colors[i], colors[j]
			if p.Tokens[a] != p.Tokens[b] {
				return p.Tokens[a] > p.Tokens[b]
			}
			return p.Tokens[a]+bonus[a] > p.Tokens[b]+bonus[b]
		})
		if err := rules.ReturnOne(s, colors[0]); err != nil {
			break
		}
		returned[colors[0]]++
	}
	return returned
}
