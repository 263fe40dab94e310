package ws

import (
	"encoding/json"
	"fmt"

	"poke-splendor/repository"

	"github.com/go-redis/redis/v8"
)

type LastAction struct {
	Action   string          `json:"action"` // take3 / buy_card / evolve_card ...
	PlayerID string          `json:"playerID"`
	Payload  json.RawMessage `json:"payload"`
}

func lastDataKey(roomID string) string { return fmt.Sprintf("room:%s:last_data", roomID) }

// SetLastData 保存玩家最近一次被接受的操作
func SetLastData(roomID, playerID string, action string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化 Payload 失败: %w", err)
	}
	bytes, err := json.Marshal(LastAction{Action: action, PlayerID: playerID, Payload: raw})
	if err != nil {
		return fmt.Errorf("序列化 LastAction 失败: %w", err)
	}
	field := fmt.Sprintf("player:%s", playerID)
	return repository.Rdb.HSet(repository.Ctx, lastDataKey(roomID), field, bytes).Err()
}

// GetLastData 没有记录时返回 nil
func GetLastData(roomID, playerID string) (*LastAction, error) {
	field := fmt.Sprintf("player:%s", playerID)
	val, err := repository.Rdb.HGet(repository.Ctx, lastDataKey(roomID), field).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var action LastAction
	if err := json.Unmarshal([]byte(val), &action); err != nil {
		return nil, fmt.Errorf("反序列化 LastAction 失败: %w", err)
	}
	return &action, nil
}

func clearLastData(roomID string) error {
	return repository.Rdb.Del(repository.Ctx, lastDataKey(roomID)).Err()
}
