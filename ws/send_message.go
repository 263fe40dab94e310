package ws

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"
	"poke-splendor/rules"

	"github.com/gorilla/websocket"
)

func roomPlayers(players []dto.PlayerConn) []dto.RoomPlayer {
	out := make([]dto.RoomPlayer, 0, len(players))
	for _, pc := range players {
		out = append(out, dto.RoomPlayer{PlayerID: pc.PlayerID, Online: pc.Online, Ready: pc.Ready, AILevel: pc.AILevel})
	}
	return out
}

// BuildSyncMessage 某个玩家视角的同步消息，可行动作只发给当前玩家
func BuildSyncMessage(info *entities.RoomInfo, s *entities.GameState, playerID string) dto.SyncMessage {
	msg := dto.SyncMessage{
		Type:       "sync",
		PlayerID:   playerID,
		SeatIndex:  findSeat(s, playerID),
		PlayerData: make(map[string]dto.PublicPlayer, len(s.Players)),
		RoomData:   dto.NewRoomData(info, s),
	}
	for _, p := range s.Players {
		msg.PlayerData[p.ID] = dto.NewPublicPlayer(p)
	}
	if cur := s.CurrentPlayer(); cur != nil && cur.ID == playerID && !s.VictoryResolved {
		a := rules.GetAvailability(s)
		msg.Availability = &a
	}
	return msg
}

// BroadcastToRoom 向房间内所有在线玩家推送各自视角的状态
func BroadcastToRoom(roomID string) {
	info, err := GetRoomInfo(roomID)
	if err != nil {
		logger.L.Warnw("⚠️ 获取房间信息失败", "roomID", roomID, "err", err)
		return
	}
	players, _ := RoomPlayers(roomID)

	s, err := GetGameState(roomID)
	if err != nil && !errors.Is(err, ErrNoGameState) {
		logger.L.Errorw("❌ 读取对局状态失败", "roomID", roomID, "err", err)
		return
	}

	for _, pc := range players {
		if !pc.Online || pc.Conn == nil {
			continue
		}
		var payload interface{}
		if s == nil || info.GameStatus == entities.RoomStatusWaiting {
			payload = dto.WaitingMessage{Type: "room", PlayerID: pc.PlayerID, RoomInfo: info, Players: roomPlayers(players)}
		} else {
			payload = BuildSyncMessage(info, s, pc.PlayerID)
		}
		data, err := json.Marshal(payload)
		if err != nil {
			logger.L.Errorw("❌ 编码同步消息失败", "err", err)
			return
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.L.Warnw("⚠️ 广播失败，关闭连接", "playerID", pc.PlayerID, "err", err)
			pc.Conn.Close()
		}
	}

	if s != nil && info.GameStatus != entities.RoomStatusWaiting {
		WriteGameLog(roomID, info, s)
	}
}

// sendToRoom 原样发送给所有在线玩家
func sendToRoom(roomID string, msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.L.Errorw("❌ 编码 JSON 失败", "err", err)
		return
	}
	players, _ := RoomPlayers(roomID)
	for _, pc := range players {
		if pc.Online && pc.Conn != nil {
			if err := pc.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.L.Warnw("⚠️ 发送消息失败", "playerID", pc.PlayerID, "err", err)
			}
		}
	}
}

var gameLogLock sync.Mutex

// WriteGameLog 每次同步追加一行 JSON，记录公开桌面和最近操作
func WriteGameLog(roomID string, info *entities.RoomInfo, s *entities.GameState) {
	roomData := dto.NewRoomData(info, s)
	players := make([]dto.PublicPlayer, len(s.Players))
	for i, p := range s.Players {
		players[i] = dto.NewPublicPlayer(p)
	}
	var last *LastAction
	if cur := s.CurrentPlayer(); cur != nil {
		last, _ = GetLastData(roomID, cur.ID)
	}
	logPath := getGameLogFilePath(roomID)

	go func() {
		entry := map[string]interface{}{
			"timestamp":  time.Now().Format("2006-01-02 15:04:05"),
			"roomID":     roomID,
			"roomData":   roomData,
			"players":    players,
			"lastAction": last,
		}
		line, err := json.Marshal(entry)
		if err != nil {
			logger.L.Errorw("❌ 序列化日志 entry 失败", "err", err)
			return
		}

		gameLogLock.Lock()
		defer gameLogLock.Unlock()
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			logger.L.Errorw("❌ 创建日志目录失败", "err", err)
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.L.Errorw("❌ 打开游戏日志文件失败", "err", err)
			return
		}
		defer f.Close()
		if _, err := f.Write(append(line, '\n')); err != nil {
			logger.L.Errorw("❌ 写入日志失败", "err", err)
		}
	}()
}
