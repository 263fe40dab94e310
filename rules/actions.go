package rules

import (
	"fmt"
	"poke-splendor/entities"
)

func guardPrimary(s *entities.GameState) error {
	if s.VictoryResolved {
		return ErrGameOver
	}
	if s.PendingReturn != nil {
		return ErrReturnPending
	}
	if s.PerTurn.PrimaryAction != entities.PrimaryNone {
		return ErrPrimaryLocked
	}
	return nil
}

func finishPrimary(s *entities.GameState, p *entities.Player, action entities.PrimaryAction) {
	s.PerTurn.PrimaryAction = action
	ClampTokenLimit(s, p)
}

// Take3 拿取不同颜色的精灵球：供应区有 3 种以上颜色时必须恰好 3 个，否则拿走所有可拿的颜色
func Take3(s *entities.GameState, colors []entities.Ball) error {
	if err := guardPrimary(s); err != nil {
		return err
	}
	p := s.CurrentPlayer()
	if len(colors) == 0 {
		return fmt.Errorf("%w: 先选择精灵球标记", ErrInvalidSelection)
	}

	seen := make(map[entities.Ball]bool, len(colors))
	for _, c := range colors {
		if c == entities.BallMaster {
			return fmt.Errorf("%w: 大师球只能在保留卡牌时获得", ErrInvalidSelection)
		}
		if !c.Valid() {
			return fmt.Errorf("%w: 未知颜色 %d", ErrInvalidSelection, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: 不能重复选择同一颜色", ErrInvalidSelection)
		}
		if s.TokenPool[c] <= 0 {
			return fmt.Errorf("%w: %s 已经没有库存", ErrInvalidSelection, c.Name())
		}
		seen[c] = true
	}

	available := 0
	for _, c := range entities.RegularBalls {
		if s.TokenPool[c] > 0 {
			available++
		}
	}
	if available >= 3 && len(colors) != 3 {
		return fmt.Errorf("%w: 需要选择 3 种不同颜色", ErrInvalidSelection)
	}
	if available < 3 && len(colors) != available {
		return fmt.Errorf("%w: 需要拿走剩余的 %d 种颜色", ErrInvalidSelection, available)
	}

	for _, c := range colors {
		s.TokenPool[c]--
		p.Tokens[c]++
	}
	finishPrimary(s, p, entities.PrimaryTake3)
	return nil
}

// Take2 拿取两个同色精灵球，该颜色库存至少 4 个
func Take2(s *entities.GameState, color entities.Ball) error {
	if err := guardPrimary(s); err != nil {
		return err
	}
	if !color.Regular() {
		return fmt.Errorf("%w: 大师球只能在保留卡牌时获得", ErrInvalidSelection)
	}
	if !CanTakeTwoSame(s, color) {
		return fmt.Errorf("%w: %s 库存不足 4 个", ErrInvalidSelection, color.Name())
	}
	p := s.CurrentPlayer()
	s.TokenPool[color] -= 2
	p.Tokens[color] += 2
	finishPrimary(s, p, entities.PrimaryTake2)
	return nil
}

// Reserve 保留展示区的一张卡并获得大师球；保留区已满时只拿一个大师球
func Reserve(s *entities.GameState, cardID string) error {
	if err := guardPrimary(s); err != nil {
		return err
	}
	p := s.CurrentPlayer()

	if len(p.Reserved) >= entities.MaxReserved {
		if s.TokenPool[entities.BallMaster] <= 0 {
			return ErrReserveFull
		}
		s.TokenPool[entities.BallMaster]--
		p.Tokens[entities.BallMaster]++
		finishPrimary(s, p, entities.PrimaryReserve)
		return nil
	}

	if cardID == "" {
		return fmt.Errorf("%w: 先选择要保留的卡", ErrCardNotFound)
	}
	mc, ok := FindMarketCard(s, cardID)
	if !ok {
		return ErrCardNotFound
	}
	if mc.Level >= entities.LevelRare {
		return ErrNotReservable
	}

	p.Reserved = append(p.Reserved, *mc.Card)
	if s.TokenPool[entities.BallMaster] > 0 {
		s.TokenPool[entities.BallMaster]--
		p.Tokens[entities.BallMaster]++
	}
	refillSlot(s, mc.Level, mc.Index)
	finishPrimary(s, p, entities.PrimaryReserve)
	return nil
}

// Buy 购买自己保留区或展示区的卡，保留区优先
func Buy(s *entities.GameState, cardID string) error {
	if err := guardPrimary(s); err != nil {
		return err
	}
	p := s.CurrentPlayer()

	if ri := findReserved(p, cardID); ri >= 0 {
		card := p.Reserved[ri]
		if !CanAfford(p, &card) {
			return ErrCannotAfford
		}
		PayCost(s, p, &card)
		p.Reserved = append(p.Reserved[:ri], p.Reserved[ri+1:]...)
		p.Hand = append(p.Hand, card)
	} else {
		mc, ok := FindMarketCard(s, cardID)
		if !ok {
			return ErrCardNotFound
		}
		card := *mc.Card
		if !CanAfford(p, &card) {
			return ErrCannotAfford
		}
		PayCost(s, p, &card)
		p.Hand = append(p.Hand, card)
		refillSlot(s, mc.Level, mc.Index)
	}

	s.PerTurn.PrimaryAction = entities.PrimaryBuy
	CheckEndTrigger(s)
	return nil
}

// Evolve 用展示区或自己保留区的卡进化一张手牌，每回合一次，不占用主要行动
func Evolve(s *entities.GameState, cardID string) error {
	if s.VictoryResolved {
		return ErrGameOver
	}
	if s.PendingReturn != nil {
		return ErrReturnPending
	}
	if s.PerTurn.Evolved {
		return ErrEvolveLocked
	}
	p := s.CurrentPlayer()

	var target entities.Card
	mc, inMarket := FindMarketCard(s, cardID)
	ri := -1
	if inMarket {
		target = *mc.Card
	} else if ri = findReserved(p, cardID); ri >= 0 {
		target = p.Reserved[ri]
	} else {
		return ErrCardNotFound
	}

	baseIdx := EvolutionBase(p, &target)
	if baseIdx < 0 {
		if !hasEvolutionBase(p, &target) {
			return ErrNoEvolutionBase
		}
		return ErrCannotAfford
	}

	PayEvolutionCost(s, p, &p.Hand[baseIdx])
	if inMarket {
		refillSlot(s, mc.Level, mc.Index)
	} else {
		p.Reserved = append(p.Reserved[:ri], p.Reserved[ri+1:]...)
	}
	stackEvolution(p, baseIdx, target)
	s.PerTurn.Evolved = true
	CheckEndTrigger(s)
	return nil
}

// stackEvolution 进化后的卡替换原手牌，原卡连同它的进化链叠到新卡下面
func stackEvolution(p *entities.Player, baseIdx int, evolved entities.Card) {
	base := p.Hand[baseIdx]
	stack := append(entities.CloneCards(p.StackOf(base.ID)), base)
	if p.Stacks == nil {
		p.Stacks = make(map[string][]entities.Card)
	}
	delete(p.Stacks, base.ID)
	p.Stacks[evolved.ID] = stack
	p.Hand[baseIdx] = evolved
}

// SkipPrimary 放弃本回合主要行动
func SkipPrimary(s *entities.GameState) error {
	if s.VictoryResolved {
		return ErrGameOver
	}
	if s.PerTurn.PrimaryAction != entities.PrimaryNone {
		return ErrPrimaryLocked
	}
	s.PerTurn.PrimaryAction = entities.PrimarySkip
	return nil
}

// EndTurn 结束回合：检查终局触发，必要时结算，否则轮到下一位
func EndTurn(s *entities.GameState) error {
	if s.VictoryResolved {
		return ErrGameOver
	}
	if s.PerTurn.PrimaryAction == entities.PrimaryNone {
		return ErrNoPrimaryAction
	}
	if s.PendingReturn != nil {
		return ErrReturnPending
	}
	p := s.CurrentPlayer()
	if ClampTokenLimit(s, p) {
		return ErrReturnPending
	}

	CheckEndTrigger(s)
	lastSeat := s.CurrentPlayerIndex == len(s.Players)-1
	if ShouldResolveVictory(s, lastSeat) {
		ResolveVictory(s)
		return nil
	}

	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
	if s.CurrentPlayerIndex == 0 {
		s.Turn++
	}
	s.PerTurn = entities.PerTurn{}
	return nil
}
