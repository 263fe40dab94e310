package ws

import (
	"fmt"
	"strings"
	"time"

	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"
	"poke-splendor/rules"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

// startGame 按加入顺序随机轮转出先手并开局
func startGame(roomID string) error {
	rt := runtimeOf(roomID)
	rt.game.Lock()
	defer rt.game.Unlock()

	seats := seatsOf(roomID)
	if len(seats) == 0 {
		return ErrNotSeated
	}
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	shift := rng.Intn(len(seats))
	ordered := make([]rules.Seat, 0, len(seats))
	ordered = append(ordered, seats[shift:]...)
	ordered = append(ordered, seats[:shift]...)

	s, err := rules.NewGame(settings.Library, ordered, rng)
	if err != nil {
		return fmt.Errorf("开局失败: %w", err)
	}
	gameID := strings.ReplaceAll(uuid.New().String(), "-", "")
	if err := clearLastData(roomID); err != nil {
		return err
	}
	if err := SetGameStartTime(roomID, s.CreatedAt); err != nil {
		return err
	}
	if err := SetGameState(roomID, s); err != nil {
		return err
	}
	if err := setGameID(roomID, gameID); err != nil {
		return err
	}
	if err := SetRoomStatus(roomID, true); err != nil {
		return err
	}
	if err := SetGameStatus(roomID, entities.RoomStatusPlaying); err != nil {
		return err
	}
	logger.L.Infow("✅ 游戏开始", "roomID", roomID, "gameID", gameID, "players", len(ordered), "starter", ordered[0].ID)
	return nil
}

func startIfReady(roomID string) error {
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}
	if info.GameStatus != entities.RoomStatusWaiting || !allReady(roomID, info.MaxPlayers) {
		return nil
	}
	return startGame(roomID)
}

// payload 为 false 时取消准备
func handleReadyMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	ready := true
	if v, ok := msgMap["payload"].(bool); ok {
		ready = v
	}
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}
	if info.GameStatus != entities.RoomStatusWaiting {
		return ErrGameStarted
	}
	if err := setReady(roomID, playerID, ready); err != nil {
		return err
	}
	return startIfReady(roomID)
}

func handleAddAIMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	p := dto.AddAIPayload{Level: entities.DefaultAILevel}
	if _, ok := msgMap["payload"]; ok {
		if err := decodePayload(msgMap, &p); err != nil {
			return err
		}
	}
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}
	if info.UserID != playerID {
		return ErrNotRoomOwner
	}
	if _, err := JoinRoomAsAI(roomID, p.Level); err != nil {
		return err
	}
	return startIfReady(roomID)
}

func handlePlayAudioMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	audioType, ok := msgMap["payload"].(string)
	if !ok || audioType == "" {
		return ErrBadMessage
	}
	sendToRoom(roomID, map[string]interface{}{
		"type":    "audio",
		"message": audioType,
		"from":    playerID,
	})
	return nil
}

// 对局结束后用同样的座位重新开一局
func handleRestartGameMessage(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error {
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}
	if info.GameStatus != entities.RoomStatusEnd {
		return ErrGameNotOver
	}
	if _, ok := RoomPlayers(roomID); !ok {
		return ErrNotSeated
	}
	return startGame(roomID)
}
