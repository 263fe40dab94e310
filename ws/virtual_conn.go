package ws

import (
	"encoding/json"
	"errors"
)

var _ WriteOnlyConn = (*VirtualConn)(nil)

// VirtualConn AI 座位的虚拟连接，收到轮到自己的同步消息时启动 AI
type VirtualConn struct {
	PlayerID string
	RoomID   string
}

type syncPeek struct {
	Type     string `json:"type"`
	RoomData struct {
		CurrentPlayer   string `json:"currentPlayer"`
		VictoryResolved bool   `json:"victoryResolved"`
	} `json:"roomData"`
}

func (v *VirtualConn) WriteMessage(messageType int, data []byte) error {
	var msg syncPeek
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil
	}
	if msg.Type == "sync" && !msg.RoomData.VictoryResolved && msg.RoomData.CurrentPlayer == v.PlayerID {
		MaybeRunAIIfNeeded(v.RoomID)
	}
	return nil
}

func (v *VirtualConn) ReadMessage() (messageType int, p []byte, err error) {
	return 0, nil, errors.New("virtual connection cannot read")
}

func (v *VirtualConn) Close() error {
	return nil
}
