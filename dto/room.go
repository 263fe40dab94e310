package dto

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Online   bool   `json:"online"`
	Ready    bool   `json:"ready"`
	AILevel  int    `json:"aiLevel"`
}

type RoomInfo struct {
	RoomID     string       `json:"roomID"`
	UserID     string       `json:"userID"`
	MaxPlayers int          `json:"maxPlayers"`
	Status     bool         `json:"status"`
	GameStatus string       `json:"gameStatus"`
	RoomPlayer []RoomPlayer `json:"roomPlayer"`
}

type CreateRoomRequest struct {
	MaxPlayers int    `json:"maxPlayers" binding:"required,min=2,max=4"`
	UserID     string `json:"userID" binding:"required"`
	AILevels   []int  `json:"aiLevels"` // 开房时直接加入的 AI 座位
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomID" binding:"required"`
}

type GetRoomList struct {
	Rooms  []RoomInfo `json:"rooms"`
	Online int        `json:"online"`
}

type TokenRequest struct {
	UserID string `json:"userID" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
