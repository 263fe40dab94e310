package ws

import (
	"fmt"
	"strings"

	"poke-splendor/ai"
	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"

	"github.com/google/uuid"
)

const aiPrefix = "ai_"

func IsAIPlayer(playerID string) bool {
	return strings.HasPrefix(playerID, aiPrefix)
}

// JoinRoomAsAI 以虚拟连接加入一个 AI 座位，AI 默认已准备
func JoinRoomAsAI(roomID string, level int) (string, error) {
	profile, ok := ai.ProfileFor(level)
	if !ok {
		return "", fmt.Errorf("%w: 未知 AI 等级 %d", ErrBadMessage, level)
	}
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return "", err
	}
	if info.GameStatus != entities.RoomStatusWaiting {
		return "", ErrGameStarted
	}

	roomLock.Lock()
	defer roomLock.Unlock()
	if len(Rooms[roomID]) >= info.MaxPlayers {
		return "", ErrRoomFull
	}

	playerID := aiPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	Rooms[roomID] = append(Rooms[roomID], dto.PlayerConn{
		PlayerID: playerID,
		Conn:     &VirtualConn{PlayerID: playerID, RoomID: roomID},
		Online:   true,
		Ready:    true,
		AILevel:  profile.Level,
	})
	logger.L.Infow("🤖 AI 玩家加入房间", "roomID", roomID, "playerID", playerID, "level", profile.Label)
	return playerID, nil
}
