package rules

import (
	"sort"

	"poke-splendor/entities"
)

// CheckEndTrigger 任意玩家奖杯达到 18 时记录触发回合
func CheckEndTrigger(s *entities.GameState) bool {
	if s.EndTriggered {
		return true
	}
	for _, p := range s.Players {
		if TotalTrophies(p) >= entities.VictoryTrophies {
			s.EndTriggered = true
			s.EndTriggerTurn = s.Turn
			return true
		}
	}
	return false
}

// ShouldResolveVictory 触发回合的最后一位玩家行动完毕后结算
func ShouldResolveVictory(s *entities.GameState, lastSeatJustPlayed bool) bool {
	if s.VictoryResolved {
		return false
	}
	if !CheckEndTrigger(s) {
		return false
	}
	if s.Turn > s.EndTriggerTurn {
		return true
	}
	return s.Turn == s.EndTriggerTurn && lastSeatJustPlayed
}

// Rank 净分降序，惩罚卡数升序，非惩罚卡数降序，座位号升序
func Rank(s *entities.GameState) []entities.Standing {
	out := make([]entities.Standing, 0, len(s.Players))
	for i, p := range s.Players {
		out = append(out, entities.Standing{
			PlayerIndex: i,
			Name:        p.Name,
			Score:       TotalScore(p),
			Penalty:     PenaltyCardCount(p),
			TrophyCards: TrophyCardCount(p),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Penalty != b.Penalty {
			return a.Penalty < b.Penalty
		}
		if a.TrophyCards != b.TrophyCards {
			return a.TrophyCards > b.TrophyCards
		}
		return a.PlayerIndex < b.PlayerIndex
	})
	return out
}

func ResolveVictory(s *entities.GameState) []entities.Standing {
	s.Ranking = Rank(s)
	s.VictoryResolved = true
	return s.Ranking
}

// Winner 未结算时返回 nil
func Winner(s *entities.GameState) *entities.Player {
	if !s.VictoryResolved || len(s.Ranking) == 0 {
		return nil
	}
	idx := s.Ranking[0].PlayerIndex
	if idx < 0 || idx >= len(s.Players) {
		return nil
	}
	return s.Players[idx]
}
