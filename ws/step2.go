package ws

import (
	"errors"
	"fmt"

	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/rules"
)

var errNothingToReturn = errors.New("没有需要归还的标记")

func handleEvolveCardMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	var p dto.CardPayload
	if err := decodePayload(msgMap, &p); err != nil {
		return err
	}
	if p.CardID == "" {
		return fmt.Errorf("%w: 缺少 cardId", ErrBadMessage)
	}
	return applyAction(roomID, playerID, "evolve_card", p, func(s *entities.GameState) error {
		return rules.Evolve(s, p.CardID)
	})
}

// 一次性归还，数量必须等于待归还数
func handleReturnTokensMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	var p dto.ReturnTokensPayload
	if err := decodePayload(msgMap, &p); err != nil {
		return err
	}
	if len(p.Tokens) > entities.BallCount {
		return fmt.Errorf("%w: tokens 长度超过 %d", ErrBadMessage, entities.BallCount)
	}
	var selection entities.Tokens
	copy(selection[:], p.Tokens)
	return applyAction(roomID, playerID, "return_tokens", p, func(s *entities.GameState) error {
		if s.PendingReturn == nil {
			return errNothingToReturn
		}
		return rules.ReturnTokens(s, selection)
	})
}

func handleEndTurnMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	return applyAction(roomID, playerID, "end_turn", nil, func(s *entities.GameState) error {
		// 还没有主要行动时视为放弃
		if s.PerTurn.PrimaryAction == entities.PrimaryNone && !rules.GetAvailability(s).AnyPrimary() {
			if err := rules.SkipPrimary(s); err != nil {
				return err
			}
		}
		err := rules.EndTurn(s)
		if errors.Is(err, rules.ErrReturnPending) && s.PendingReturn != nil {
			return fmt.Errorf("%w: 还需归还 %d 个", err, s.PendingReturn.Required)
		}
		return err
	})
}
