package ws

import (
	"poke-splendor/entities"
	"poke-splendor/rules"
)

func setReady(roomID, playerID string, ready bool) error {
	roomLock.Lock()
	defer roomLock.Unlock()
	for i, pc := range Rooms[roomID] {
		if pc.PlayerID == playerID {
			Rooms[roomID][i].Ready = ready
			return nil
		}
	}
	return ErrNotSeated
}

// allReady 房间坐满且所有人都已准备
func allReady(roomID string, maxPlayers int) bool {
	players, _ := RoomPlayers(roomID)
	if len(players) < maxPlayers {
		return false
	}
	for _, pc := range players {
		if !pc.Ready {
			return false
		}
	}
	return true
}

// seatsOf 按加入顺序生成座位
func seatsOf(roomID string) []rules.Seat {
	players, _ := RoomPlayers(roomID)
	seats := make([]rules.Seat, len(players))
	for i, pc := range players {
		seats[i] = rules.Seat{ID: pc.PlayerID, Name: pc.PlayerID, AILevel: pc.AILevel}
	}
	return seats
}

func findSeat(s *entities.GameState, playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
