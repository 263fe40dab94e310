package service

import (
	"errors"
	"fmt"
	"sort"

	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"
	"poke-splendor/ws"
)

var ErrTooManyAI = errors.New("AI 数量必须少于房间人数")

func CreateRoom(params dto.CreateRoomRequest) (string, error) {
	if len(params.AILevels) >= params.MaxPlayers {
		return "", ErrTooManyAI
	}
	roomID := NewRoomID()

	err := ws.SetRoomInfo(roomID, entities.RoomInfo{
		MaxPlayers: params.MaxPlayers,
		GameStatus: entities.RoomStatusWaiting,
		RoomStatus: false,
		UserID:     params.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}
	ws.RegisterRoom(roomID)

	for _, level := range params.AILevels {
		if _, err := ws.JoinRoomAsAI(roomID, level); err != nil {
			return "", fmt.Errorf("加入 AI 失败: %w", err)
		}
	}
	logger.L.Infow("✅ 房间创建成功", "roomID", roomID, "owner", params.UserID, "maxPlayers", params.MaxPlayers, "ai", len(params.AILevels))
	return roomID, nil
}

func DeleteRoom(params dto.DeleteRoomRequest) error {
	n, err := ws.DeleteRoomData(params.RoomID)
	if err != nil {
		return err
	}
	ws.RemoveRoom(params.RoomID)
	logger.L.Infow("房间已删除", "roomID", params.RoomID, "keys", n)
	return nil
}

func GetRoomInfo(roomID string) (dto.RoomInfo, error) {
	info, err := ws.GetRoomInfo(roomID)
	if err != nil {
		return dto.RoomInfo{}, err
	}
	players, _ := ws.RoomPlayers(roomID)
	roomPlayers := make([]dto.RoomPlayer, 0, len(players))
	for _, pc := range players {
		roomPlayers = append(roomPlayers, dto.RoomPlayer{
			PlayerID: pc.PlayerID,
			Online:   pc.Online,
			Ready:    pc.Ready,
			AILevel:  pc.AILevel,
		})
	}
	return dto.RoomInfo{
		RoomID:     roomID,
		UserID:     info.UserID,
		MaxPlayers: info.MaxPlayers,
		Status:     info.RoomStatus,
		GameStatus: string(info.GameStatus),
		RoomPlayer: roomPlayers,
	}, nil
}

// GetRoomList 房间信息已丢失的内存房间会被顺手移除
func GetRoomList() ([]dto.RoomInfo, error) {
	rooms := []dto.RoomInfo{}
	for _, roomID := range ws.RoomIDs() {
		room, err := GetRoomInfo(roomID)
		if errors.Is(err, ws.ErrRoomNotFound) {
			ws.RemoveRoom(roomID)
			continue
		}
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })
	return rooms, nil
}

func GetOnlinePlayer() int {
	online := 0
	for _, roomID := range ws.RoomIDs() {
		players, _ := ws.RoomPlayers(roomID)
		for _, pc := range players {
			if pc.Online && pc.AILevel == entities.DisabledAILevel {
				online++
			}
		}
	}
	return online
}
