package ws

import (
	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"
)

// 校验房间是否有空位，并将玩家加入房间；已在房间中的玩家视为重连
func validateAndJoinRoom(roomID, playerID string, conn dto.ConnInterface) error {
	info, err := GetRoomInfo(roomID)
	if err != nil {
		return err
	}

	roomLock.Lock()
	defer roomLock.Unlock()

	players := Rooms[roomID]
	for i, pc := range players {
		if pc.PlayerID == playerID {
			if pc.Conn != nil && pc.Conn != conn {
				pc.Conn.Close()
			}
			players[i].Conn = conn
			players[i].Online = true
			logger.L.Infow("玩家重连成功", "roomID", roomID, "playerID", playerID)
			return nil
		}
	}

	if info.GameStatus != entities.RoomStatusWaiting {
		return ErrGameStarted
	}
	if len(players) >= info.MaxPlayers {
		return ErrRoomFull
	}
	Rooms[roomID] = append(players, dto.PlayerConn{
		PlayerID: playerID,
		Conn:     conn,
		Online:   true,
		AILevel:  entities.DisabledAILevel,
	})
	logger.L.Infow("玩家加入房间", "roomID", roomID, "playerID", playerID, "count", len(Rooms[roomID]), "max", info.MaxPlayers)
	return nil
}
