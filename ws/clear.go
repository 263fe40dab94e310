package ws

import (
	"context"
	"errors"
	"time"

	"poke-splendor/entities"
	"poke-splendor/logger"
)

// ScheduleDailyRoomReset 每天凌晨 4 点清理没有真人在线的房间
func ScheduleDailyRoomReset(ctx context.Context) {
	for {
		d := durationUntilNext4AM(time.Now())
		logger.L.Infow("距离下次清理房间", "after", d)

		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
		n := clearRooms()
		logger.L.Infow("⏰ 清理房间完成", "removed", n)
	}
}

func durationUntilNext4AM(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 4, 0, 0, 0, now.Location())
	if !now.Before(next) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

// idleRoom 没有在线真人，或信息已经丢失的房间
func idleRoom(roomID string) bool {
	if _, err := GetRoomInfo(roomID); err != nil {
		return true
	}
	players, _ := RoomPlayers(roomID)
	for _, pc := range players {
		if pc.AILevel == entities.DisabledAILevel && pc.Online {
			return false
		}
	}
	return true
}

func clearRooms() int {
	removed := 0
	for _, roomID := range RoomIDs() {
		if !idleRoom(roomID) {
			continue
		}
		if _, err := DeleteRoomData(roomID); err != nil && !errors.Is(err, ErrRoomNotFound) {
			logger.L.Warnw("⚠️ 清理房间数据失败", "roomID", roomID, "err", err)
			continue
		}
		RemoveRoom(roomID)
		removed++
	}
	return removed
}
