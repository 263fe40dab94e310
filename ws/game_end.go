package ws

import (
	"context"
	"encoding/json"
	"time"

	"poke-splendor/entities"
	"poke-splendor/logger"

	"github.com/gorilla/websocket"
)

type gameEndMessage struct {
	Type    string              `json:"type"`
	GameID  string              `json:"gameID"`
	Winner  string              `json:"winner"`
	Turns   int                 `json:"turns"`
	Ranking []entities.Standing `json:"ranking"`
}

func buildGameEnd(info *entities.RoomInfo, s *entities.GameState) gameEndMessage {
	msg := gameEndMessage{Type: "game_end", Turns: s.Turn, Ranking: s.Ranking}
	if info != nil {
		msg.GameID = info.GameID
	}
	if len(s.Ranking) > 0 {
		msg.Winner = s.Players[s.Ranking[0].PlayerIndex].ID
	}
	return msg
}

// finishGame 对局结算后更新房间状态、通知所有人并归档
func finishGame(roomID string, s *entities.GameState) {
	if err := SetGameStatus(roomID, entities.RoomStatusEnd); err != nil {
		logger.L.Errorw("❌ 设置游戏状态失败", "roomID", roomID, "err", err)
	}
	info, err := GetRoomInfo(roomID)
	if err != nil {
		logger.L.Errorw("❌ 获取房间信息失败", "roomID", roomID, "err", err)
		return
	}
	msg := buildGameEnd(info, s)
	sendToRoom(roomID, msg)
	logger.L.Infow("✅ 游戏结束", "roomID", roomID, "gameID", info.GameID, "winner", msg.Winner, "turns", s.Turn, "log", getGameLogFilePath(roomID))

	if settings.OnGameEnd == nil {
		return
	}
	final := s.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := settings.OnGameEnd(ctx, roomID, info, final); err != nil {
			logger.L.Errorw("❌ 对局归档失败", "roomID", roomID, "err", err)
		}
	}()
}

// 客户端主动查询结算结果
func handleGameEndMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	s, err := GetGameState(roomID)
	if err != nil {
		return err
	}
	if !s.VictoryResolved {
		return ErrGameNotOver
	}
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(buildGameEnd(info, s))
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}
