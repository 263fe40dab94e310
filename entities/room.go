package entities

type RoomInfo struct {
	RoomStatus bool       `json:"roomStatus"` // 是否已开局
	GameStatus RoomStatus `json:"gameStatus"`
	MaxPlayers int        `json:"maxPlayers"`
	UserID     string     `json:"userID"` // 房主
	GameID     string     `json:"gameID"`
}

type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // 等待玩家加入房间
	RoomStatusPlaying RoomStatus = "playing"
	RoomStatusEnd     RoomStatus = "end"
)
