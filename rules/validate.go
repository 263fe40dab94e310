package rules

import (
	"fmt"

	"poke-splendor/entities"
)

// ValidateState 检查加载进来的存档，标记守恒只在所有玩家都在场时成立
func ValidateState(s *entities.GameState) error {
	if s == nil {
		return fmt.Errorf("%w: 空状态", ErrInvalidState)
	}
	if len(s.Players) < 2 || len(s.Players) > 4 {
		return fmt.Errorf("%w: 玩家人数 %d", ErrInvalidState, len(s.Players))
	}
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return fmt.Errorf("%w: 当前玩家下标 %d", ErrInvalidState, s.CurrentPlayerIndex)
	}
	if s.Turn < 1 {
		return fmt.Errorf("%w: 回合数 %d", ErrInvalidState, s.Turn)
	}

	initial, err := PoolForPlayers(len(s.Players))
	if err != nil {
		return err
	}
	var total entities.Tokens
	total = total.Add(s.TokenPool)
	for i, p := range s.Players {
		if p == nil {
			return fmt.Errorf("%w: 第 %d 个玩家为空", ErrInvalidState, i)
		}
		if len(p.Reserved) > entities.MaxReserved {
			return fmt.Errorf("%w: %s 保留了 %d 张卡", ErrInvalidState, p.Name, len(p.Reserved))
		}
		for c, n := range p.Tokens {
			if n < 0 {
				return fmt.Errorf("%w: %s 的 %s 为负数", ErrInvalidState, p.Name, entities.Ball(c).Name())
			}
		}
		pending := s.PendingReturn != nil && s.PendingReturn.PlayerIndex == i
		if TotalTokens(p) > entities.MaxTokens && !pending {
			return fmt.Errorf("%w: %s 持有 %d 个标记", ErrInvalidState, p.Name, TotalTokens(p))
		}
		total = total.Add(p.Tokens)
	}
	for c, n := range s.TokenPool {
		if n < 0 {
			return fmt.Errorf("%w: 供应区 %s 为负数", ErrInvalidState, entities.Ball(c).Name())
		}
	}
	if total != initial {
		return fmt.Errorf("%w: 标记总数不守恒", ErrInvalidState)
	}
	if s.PendingReturn != nil {
		pr := s.PendingReturn
		if pr.PlayerIndex < 0 || pr.PlayerIndex >= len(s.Players) || pr.Required <= 0 {
			return fmt.Errorf("%w: 待归还记录不合法", ErrInvalidState)
		}
	}
	return nil
}
