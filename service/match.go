package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"poke-splendor/entities"
	"poke-splendor/repository"
)

type MatchSaver interface {
	SaveMatch(ctx context.Context, rec repository.MatchRecord) error
}

func BuildMatchRecord(roomID string, info *entities.RoomInfo, s *entities.GameState) (repository.MatchRecord, error) {
	ranking, err := json.Marshal(s.Ranking)
	if err != nil {
		return repository.MatchRecord{}, fmt.Errorf("序列化排名失败: %w", err)
	}
	rec := repository.MatchRecord{
		RoomID:     roomID,
		Turns:      s.Turn,
		Ranking:    ranking,
		FinishedAt: time.Now(),
	}
	if info != nil {
		rec.GameID = info.GameID
	}
	if len(s.Ranking) > 0 {
		rec.Winner = s.Players[s.Ranking[0].PlayerIndex].ID
	}
	return rec, nil
}

// NewMatchArchiver 对局结束回调，把结果写入归档
func NewMatchArchiver(store MatchSaver) func(ctx context.Context, roomID string, info *entities.RoomInfo, s *entities.GameState) error {
	return func(ctx context.Context, roomID string, info *entities.RoomInfo, s *entities.GameState) error {
		rec, err := BuildMatchRecord(roomID, info, s)
		if err != nil {
			return err
		}
		return store.SaveMatch(ctx, rec)
	}
}
