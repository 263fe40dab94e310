package service

import (
	"fmt"

	"poke-splendor/dto"
	"poke-splendor/logger"
	"poke-splendor/rules"
	"poke-splendor/ws"
)

// ExportState 完整状态加上每位玩家的派生数值，供外部模型读取
func ExportState(roomID string) (dto.StateExport, error) {
	s, err := ws.GetGameState(roomID)
	if err != nil {
		return dto.StateExport{}, err
	}
	out := dto.StateExport{
		State:        s,
		Players:      make([]dto.PublicPlayer, len(s.Players)),
		Availability: rules.GetAvailability(s),
	}
	for i, p := range s.Players {
		out.Players[i] = dto.NewPublicPlayer(p)
	}
	return out, nil
}

func SaveGame(roomID string) error {
	s, err := ws.GetGameState(roomID)
	if err != nil {
		return err
	}
	if err := ws.SaveSnapshot(roomID, s); err != nil {
		return err
	}
	logger.L.Infow("✅ 对局已存档", "roomID", roomID, "turn", s.Turn)
	return nil
}

// LoadGame 读档前先校验状态，不合法的存档不会覆盖当前对局
func LoadGame(roomID string) error {
	s, err := ws.GetSnapshot(roomID)
	if err != nil {
		return err
	}
	if err := rules.ValidateState(s); err != nil {
		return fmt.Errorf("存档校验失败: %w", err)
	}
	if err := ws.RestoreGameState(roomID, s); err != nil {
		return err
	}
	logger.L.Infow("✅ 对局已读档", "roomID", roomID, "turn", s.Turn)
	ws.BroadcastToRoom(roomID)
	return nil
}
