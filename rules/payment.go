package rules

import "poke-splendor/entities"

// PayCost 按 CanAfford 的顺序扣除标记，花掉的标记回到供应区
func PayCost(s *entities.GameState, p *entities.Player, card *entities.Card) entities.Tokens {
	var spent entities.Tokens
	need := card.Need()
	bonus := RewardBonuses(p)
	masterBonus := bonus[entities.BallMaster]

	takeMaster := func(required int) {
		useBonus := min(masterBonus, required)
		masterBonus -= useBonus
		required -= useBonus
		if required > 0 {
			use := min(p.Tokens[entities.BallMaster], required)
			p.Tokens[entities.BallMaster] -= use
			spent[entities.BallMaster] += use
		}
	}

	for _, c := range entities.RegularBalls {
		required := max(0, need[c]-bonus[c])
		use := min(p.Tokens[c], required)
		p.Tokens[c] -= use
		spent[c] += use
		required -= use
		if required > 0 {
			takeMaster(required)
		}
	}
	if need[entities.BallMaster] > 0 {
		takeMaster(need[entities.BallMaster])
	}

	s.TokenPool = s.TokenPool.Add(spent)
	return spent
}

func PayEvolutionCost(s *entities.GameState, p *entities.Player, base *entities.Card) entities.Tokens {
	var spent entities.Tokens
	if base == nil || base.Evolution == nil {
		return spent
	}
	cost := base.Evolution.Cost
	if !cost.Color.Valid() {
		return spent
	}
	bonus := RewardBonuses(p)
	remaining := cost.Number

	if cost.Color != entities.BallMaster {
		remaining -= min(bonus[cost.Color], remaining)
		use := min(p.Tokens[cost.Color], remaining)
		p.Tokens[cost.Color] -= use
		spent[cost.Color] += use
		remaining -= use
	}
	if remaining > 0 {
		remaining -= min(bonus[entities.BallMaster], remaining)
	}
	if remaining > 0 {
		use := min(p.Tokens[entities.BallMaster], remaining)
		p.Tokens[entities.BallMaster] -= use
		spent[entities.BallMaster] += use
	}

	s.TokenPool = s.TokenPool.Add(spent)
	return spent
}

// ClampTokenLimit 超过 10 个标记时登记归还义务
func ClampTokenLimit(s *entities.GameState, p *entities.Player) bool {
	required := TotalTokens(p) - entities.MaxTokens
	if required <= 0 {
		return false
	}
	idx := s.PlayerIndex(p)
	if idx < 0 {
		return false
	}
	s.PendingReturn = &entities.TokenReturn{PlayerIndex: idx, Required: required}
	return true
}

// ReturnTokens 一次性归还，数量必须恰好等于待归还数
func ReturnTokens(s *entities.GameState, selection entities.Tokens) error {
	pr := s.PendingReturn
	if pr == nil {
		return ErrInvalidSelection
	}
	p := s.Players[pr.PlayerIndex]
	if selection.Total() != pr.Required {
		return ErrInvalidSelection
	}
	for c, n := range selection {
		if n < 0 || n > p.Tokens[c] {
			return ErrInvalidSelection
		}
	}
	for c, n := range selection {
		p.Tokens[c] -= n
		s.TokenPool[c] += n
	}
	s.PendingReturn = nil
	return nil
}

// ReturnOne 逐个归还，归还够数后解除归还义务
func ReturnOne(s *entities.GameState, color entities.Ball) error {
	pr := s.PendingReturn
	if pr == nil || !color.Valid() {
		return ErrInvalidSelection
	}
	p := s.Players[pr.PlayerIndex]
	if p.Tokens[color] <= 0 {
		return ErrInvalidSelection
	}
	p.Tokens[color]--
	s.TokenPool[color]++
	pr.Required--
	if pr.Required <= 0 {
		s.PendingReturn = nil
	}
	return nil
}
