package ws

import (
	"fmt"

	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"
	"poke-splendor/rules"
)

// withGame 在房间锁内读取状态、校验回合、执行修改并写回，失败时不落盘
func withGame(roomID, playerID string, fn func(s *entities.GameState) error) (*entities.GameState, error) {
	rt := runtimeOf(roomID)
	rt.game.Lock()
	defer rt.game.Unlock()

	s, err := GetGameState(roomID)
	if err != nil {
		return nil, err
	}
	if s.VictoryResolved {
		return nil, rules.ErrGameOver
	}
	if cur := s.CurrentPlayer(); cur == nil || cur.ID != playerID {
		return nil, ErrNotYourTurn
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := SetGameState(roomID, s); err != nil {
		return nil, err
	}
	return s, nil
}

// applyAction 执行一次玩家操作，记录最近操作并处理结算
func applyAction(roomID, playerID, action string, payload interface{}, fn func(s *entities.GameState) error) error {
	s, err := withGame(roomID, playerID, fn)
	if err != nil {
		return err
	}
	if err := SetLastData(roomID, playerID, action, payload); err != nil {
		logger.L.Warnw("⚠️ 保存最近操作失败", "roomID", roomID, "err", err)
	}
	if s.VictoryResolved {
		finishGame(roomID, s)
	}
	return nil
}

func toBall(n int) (entities.Ball, error) {
	b := entities.Ball(n)
	if !b.Valid() {
		return 0, fmt.Errorf("%w: 未知颜色 %d", rules.ErrInvalidSelection, n)
	}
	return b, nil
}

func handleTake3Message(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	var p dto.Take3Payload
	if err := decodePayload(msgMap, &p); err != nil {
		return err
	}
	colors := make([]entities.Ball, 0, len(p.Colors))
	for _, n := range p.Colors {
		b, err := toBall(n)
		if err != nil {
			return err
		}
		colors = append(colors, b)
	}
	return applyAction(roomID, playerID, "take3", p, func(s *entities.GameState) error {
		return rules.Take3(s, colors)
	})
}

func handleTake2Message(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	var p dto.Take2Payload
	if err := decodePayload(msgMap, &p); err != nil {
		return err
	}
	color, err := toBall(p.Color)
	if err != nil {
		return err
	}
	return applyAction(roomID, playerID, "take2", p, func(s *entities.GameState) error {
		return rules.Take2(s, color)
	})
}

// 保留区已满时 cardId 可以为空，只拿一个大师球
func handleReserveCardMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	var p dto.CardPayload
	if _, ok := msgMap["payload"]; ok {
		if err := decodePayload(msgMap, &p); err != nil {
			return err
		}
	}
	return applyAction(roomID, playerID, "reserve_card", p, func(s *entities.GameState) error {
		return rules.Reserve(s, p.CardID)
	})
}

func handleBuyCardMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	var p dto.CardPayload
	if err := decodePayload(msgMap, &p); err != nil {
		return err
	}
	if p.CardID == "" {
		return fmt.Errorf("%w: 缺少 cardId", ErrBadMessage)
	}
	return applyAction(roomID, playerID, "buy_card", p, func(s *entities.GameState) error {
		return rules.Buy(s, p.CardID)
	})
}
