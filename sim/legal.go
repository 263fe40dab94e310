package sim

import (
	"poke-splendor/entities"
	"poke-splendor/rules"
)

// LegalActions 列出当前玩家此刻可以执行的所有动作
func (e *Env) LegalActions() []Action {
	s := e.state
	if s == nil || s.VictoryResolved {
		return nil
	}
	p := s.CurrentPlayer()

	if s.PendingReturn != nil {
		var out []Action
		for c := entities.BallPoke; c <= entities.BallMaster; c++ {
			if p.Tokens[c] > 0 {
				out = append(out, Action{Type: ActReturnTokens, Colors: []entities.Ball{c}})
			}
		}
		return out
	}

	var out []Action
	primaryLocked := s.PerTurn.PrimaryAction != entities.PrimaryNone
	if !primaryLocked {
		out = append(out, takeActions(s)...)
		out = append(out, reserveActions(s, p)...)
		out = append(out, buyActions(s, p)...)
		out = append(out, Action{Type: ActSkipPrimary})
	}
	if !s.PerTurn.Evolved {
		out = append(out, evolveActions(s, p)...)
	}
	if primaryLocked && rules.TotalTokens(p) <= entities.MaxTokens {
		out = append(out, Action{Type: ActEndTurn})
	}
	return out
}

func takeActions(s *entities.GameState) []Action {
	var colors []entities.Ball
	for _, c := range entities.RegularBalls {
		if s.TokenPool[c] > 0 {
			colors = append(colors, c)
		}
	}

	var out []Action
	if len(colors) >= 3 {
		for i := 0; i < len(colors); i++ {
			for j := i + 1; j < len(colors); j++ {
				for k := j + 1; k < len(colors); k++ {
					out = append(out, Action{Type: ActTake3, Colors: []entities.Ball{colors[i], colors[j], colors[k]}})
				}
			}
		}
	} else if len(colors) > 0 {
		out = append(out, Action{Type: ActTake3, Colors: colors})
	}

	for _, c := range entities.RegularBalls {
		if rules.CanTakeTwoSame(s, c) {
			out = append(out, Action{Type: ActTake2, Colors: []entities.Ball{c}})
		}
	}
	return out
}

func reserveActions(s *entities.GameState, p *entities.Player) []Action {
	if len(p.Reserved) >= entities.MaxReserved {
		if s.TokenPool[entities.BallMaster] > 0 {
			return []Action{{Type: ActReserveMaster}}
		}
		return nil
	}
	var out []Action
	for _, mc := range rules.MarketCards(s, entities.LevelOne, entities.LevelTwo, entities.LevelThree) {
		out = append(out, Action{Type: ActReserveMarket, CardID: mc.Card.ID, Level: mc.Level, Index: mc.Index})
	}
	return out
}

func buyActions(s *entities.GameState, p *entities.Player) []Action {
	var out []Action
	for _, mc := range rules.MarketCards(s) {
		if rules.CanAfford(p, mc.Card) {
			out = append(out, Action{Type: ActBuyMarket, CardID: mc.Card.ID, Level: mc.Level, Index: mc.Index})
		}
	}
	for i := range p.Reserved {
		if rules.CanAfford(p, &p.Reserved[i]) {
			out = append(out, Action{Type: ActBuyReserved, CardID: p.Reserved[i].ID})
		}
	}
	return out
}

func evolveActions(s *entities.GameState, p *entities.Player) []Action {
	var out []Action
	for _, mc := range rules.MarketCards(s) {
		if rules.EvolutionBase(p, mc.Card) >= 0 {
			out = append(out, Action{Type: ActEvolveMarket, CardID: mc.Card.ID, Level: mc.Level, Index: mc.Index})
		}
	}
	for i := range p.Reserved {
		if rules.EvolutionBase(p, &p.Reserved[i]) >= 0 {
			out = append(out, Action{Type: ActEvolveReserved, CardID: p.Reserved[i].ID})
		}
	}
	return out
}
