package rules

import "poke-splendor/entities"

// Availability 当前玩家各类行动是否可用
type Availability struct {
	Take3   bool `json:"take3"`
	Take2   bool `json:"take2"`
	Reserve bool `json:"reserve"`
	Buy     bool `json:"buy"`
	Evolve  bool `json:"evolve"`
	EndTurn bool `json:"endTurn"`
}

// Take 能否拿取任何标记
func (a Availability) Take() bool { return a.Take3 || a.Take2 }

func (a Availability) AnyPrimary() bool {
	return a.Take3 || a.Take2 || a.Reserve || a.Buy
}

func GetAvailability(s *entities.GameState) Availability {
	var out Availability
	p := s.CurrentPlayer()
	if p == nil {
		return out
	}

	for _, c := range entities.RegularBalls {
		if s.TokenPool[c] > 0 {
			out.Take3 = true
		}
		if CanTakeTwoSame(s, c) {
			out.Take2 = true
		}
	}

	if len(p.Reserved) >= entities.MaxReserved {
		out.Reserve = s.TokenPool[entities.BallMaster] > 0
	} else {
		out.Reserve = len(MarketCards(s, entities.LevelOne, entities.LevelTwo, entities.LevelThree)) > 0
	}

	for i := range p.Reserved {
		if CanAfford(p, &p.Reserved[i]) {
			out.Buy = true
			break
		}
	}
	market := MarketCards(s)
	if !out.Buy {
		for _, mc := range market {
			if CanAfford(p, mc.Card) {
				out.Buy = true
				break
			}
		}
	}

	if !s.PerTurn.Evolved {
		for _, mc := range market {
			if EvolutionBase(p, mc.Card) >= 0 {
				out.Evolve = true
				break
			}
		}
		for i := range p.Reserved {
			if !out.Evolve && EvolutionBase(p, &p.Reserved[i]) >= 0 {
				out.Evolve = true
			}
		}
	}

	out.EndTurn = s.PerTurn.PrimaryAction != entities.PrimaryNone || s.VictoryResolved
	return out
}
