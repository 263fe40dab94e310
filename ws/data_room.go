package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"poke-splendor/entities"
	"poke-splendor/logger"
	"poke-splendor/repository"

	"github.com/go-redis/redis/v8"
)

var (
	ErrRoomNotFound = errors.New("房间不存在")
	ErrNoGameState  = errors.New("房间还没有开局")
	ErrNoSnapshot   = errors.New("房间没有存档")
)

func roomInfoKey(roomID string) string  { return fmt.Sprintf("room:%s:roomInfo", roomID) }
func stateKey(roomID string) string     { return fmt.Sprintf("room:%s:state", roomID) }
func saveKey(roomID string) string      { return fmt.Sprintf("room:%s:save", roomID) }
func startTimeKey(roomID string) string { return fmt.Sprintf("room:%s:game_start_time", roomID) }

// SetRoomInfo 设置房间的全部信息（Hash）
func SetRoomInfo(roomID string, info entities.RoomInfo) error {
	data := map[string]interface{}{
		"gameStatus": string(info.GameStatus),
		"roomStatus": strconv.FormatBool(info.RoomStatus),
		"maxPlayers": strconv.Itoa(info.MaxPlayers),
		"userID":     info.UserID,
		"gameID":     info.GameID,
	}
	if err := repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), data).Err(); err != nil {
		return fmt.Errorf("设置房间信息失败: %w", err)
	}
	return nil
}

// GetRoomInfo 获取房间的全部信息（Hash）
func GetRoomInfo(roomID string) (*entities.RoomInfo, error) {
	m, err := repository.Rdb.HGetAll(repository.Ctx, roomInfoKey(roomID)).Result()
	if err != nil {
		return nil, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if len(m) == 0 {
		return nil, ErrRoomNotFound
	}

	info := &entities.RoomInfo{
		GameStatus: entities.RoomStatus(m["gameStatus"]),
		UserID:     m["userID"],
		GameID:     m["gameID"],
	}
	if info.RoomStatus, err = strconv.ParseBool(m["roomStatus"]); err != nil {
		return nil, fmt.Errorf("roomStatus 字段解析失败: %w", err)
	}
	if s := m["maxPlayers"]; s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			info.MaxPlayers = n
		} else {
			logger.L.Warnw("⚠️ maxPlayers 转换失败", "roomID", roomID, "err", err)
		}
	}
	return info, nil
}

func SetGameStatus(roomID string, status entities.RoomStatus) error {
	if err := repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), "gameStatus", string(status)).Err(); err != nil {
		return fmt.Errorf("更新游戏状态失败: %w", err)
	}
	logger.L.Debugw("房间状态已更新", "roomID", roomID, "gameStatus", status)
	return nil
}

func SetRoomStatus(roomID string, status bool) error {
	if err := repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), "roomStatus", strconv.FormatBool(status)).Err(); err != nil {
		return fmt.Errorf("更新房间状态失败: %w", err)
	}
	return nil
}

func setGameID(roomID, gameID string) error {
	return repository.Rdb.HSet(repository.Ctx, roomInfoKey(roomID), "gameID", gameID).Err()
}

func setJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	return repository.Rdb.Set(repository.Ctx, key, data, 0).Err()
}

func getState(key string, missing error) (*entities.GameState, error) {
	raw, err := repository.Rdb.Get(repository.Ctx, key).Bytes()
	if err == redis.Nil {
		return nil, missing
	}
	if err != nil {
		return nil, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	var s entities.GameState
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", key, err)
	}
	return &s, nil
}

func SetGameState(roomID string, s *entities.GameState) error {
	if err := setJSON(stateKey(roomID), s); err != nil {
		return fmt.Errorf("保存对局状态失败: %w", err)
	}
	return nil
}

func GetGameState(roomID string) (*entities.GameState, error) {
	return getState(stateKey(roomID), ErrNoGameState)
}

// SaveSnapshot 把当前状态复制到存档位
func SaveSnapshot(roomID string, s *entities.GameState) error {
	if err := setJSON(saveKey(roomID), s); err != nil {
		return fmt.Errorf("保存存档失败: %w", err)
	}
	return nil
}

func GetSnapshot(roomID string) (*entities.GameState, error) {
	return getState(saveKey(roomID), ErrNoSnapshot)
}

func SetGameStartTime(roomID string, t time.Time) error {
	return repository.Rdb.Set(repository.Ctx, startTimeKey(roomID), t.Format("20060102_150405"), 0).Err()
}

func GetGameStartTime(roomID string) (string, error) {
	v, err := repository.Rdb.Get(repository.Ctx, startTimeKey(roomID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}

// DeleteRoomData 用 SCAN 找出 room:<id>: 前缀的所有 key 并删除，返回删除数量
func DeleteRoomData(roomID string) (int, error) {
	prefix := fmt.Sprintf("room:%s:", roomID)
	var cursor uint64
	var keys []string
	for {
		batch, cur, err := repository.Rdb.Scan(repository.Ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keys = append(keys, batch...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return 0, ErrRoomNotFound
	}
	if err := repository.Rdb.Del(repository.Ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	return len(keys), nil
}

// RestoreGameState 在房间锁内替换对局状态，并同步房间的游戏状态
func RestoreGameState(roomID string, s *entities.GameState) error {
	rt := runtimeOf(roomID)
	rt.game.Lock()
	defer rt.game.Unlock()

	if err := SetGameState(roomID, s); err != nil {
		return err
	}
	status := entities.RoomStatusPlaying
	if s.VictoryResolved {
		status = entities.RoomStatusEnd
	}
	if err := SetRoomStatus(roomID, true); err != nil {
		return err
	}
	return SetGameStatus(roomID, status)
}
