package dto

import (
	"sync"

	"poke-splendor/entities"
	"poke-splendor/rules"

	"github.com/gorilla/websocket"
)

type ConnInterface interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// RealConn 真实连接，gorilla 连接同一时刻只允许一个写者
type RealConn struct {
	*websocket.Conn
	mu sync.Mutex
}

func (r *RealConn) WriteMessage(messageType int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Conn.WriteMessage(messageType, data)
}

func (r *RealConn) Close() error {
	return r.Conn.Close()
}

// 玩家连接对象结构体
type PlayerConn struct {
	PlayerID string
	Conn     ConnInterface
	Online   bool
	Ready    bool
	AILevel  int // -1 表示真人
}

// ---------- WebSocket 消息载荷 ----------

type Take3Payload struct {
	Colors []int `mapstructure:"colors"`
}

type Take2Payload struct {
	Color int `mapstructure:"color"`
}

type CardPayload struct {
	CardID string `mapstructure:"cardId"`
}

type ReturnTokensPayload struct {
	Tokens []int `mapstructure:"tokens"` // 按颜色的归还数量
}

type AddAIPayload struct {
	Level int `mapstructure:"level"`
}

// ---------- 同步与导出 ----------

// PublicPlayer 桌面上所有人可见的玩家信息
type PublicPlayer struct {
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	AILevel     int                        `json:"aiLevel"`
	IsStarter   bool                       `json:"isStarter"`
	Hand        []entities.Card            `json:"hand"`
	Reserved    []entities.Card            `json:"reserved"`
	Tokens      entities.Tokens            `json:"tokens"`
	Stacks      map[string][]entities.Card `json:"stacks,omitempty"`
	Bonuses     entities.Tokens            `json:"bonuses"`
	Trophies    int                        `json:"trophies"`
	TokenTotal  int                        `json:"tokenTotal"`
	Penalty     int                        `json:"penalty"`
	TrophyCards int                        `json:"trophyCards"`
}

// RoomData 公开的桌面状态，不包含牌堆顺序
type RoomData struct {
	RoomInfo           *entities.RoomInfo       `json:"roomInfo"`
	Turn               int                      `json:"turn"`
	CurrentPlayer      string                   `json:"currentPlayer"`
	CurrentPlayerIndex int                      `json:"currentPlayerIndex"`
	TokenPool          entities.Tokens          `json:"tokenPool"`
	Market             map[int][]*entities.Card `json:"market"`
	DeckSizes          map[int]int              `json:"deckSizes"`
	PerTurn            entities.PerTurn         `json:"perTurn"`
	PendingReturn      *entities.TokenReturn    `json:"pendingReturn,omitempty"`
	EndTriggered       bool                     `json:"endTriggered"`
	VictoryResolved    bool                     `json:"victoryResolved"`
	Ranking            []entities.Standing      `json:"ranking,omitempty"`
}

type SyncMessage struct {
	Type         string                  `json:"type"`
	PlayerID     string                  `json:"playerId"`
	SeatIndex    int                     `json:"seatIndex"`
	PlayerData   map[string]PublicPlayer `json:"playerData"`
	RoomData     RoomData                `json:"roomData"`
	Availability *rules.Availability     `json:"availability,omitempty"` // 只发给当前玩家
}

// StateExport 完整状态导出，附带每位玩家的派生数值
type StateExport struct {
	State        *entities.GameState `json:"state"`
	Players      []PublicPlayer      `json:"players"`
	Availability rules.Availability  `json:"availability"`
}

func NewPublicPlayer(p *entities.Player) PublicPlayer {
	return PublicPlayer{
		ID:          p.ID,
		Name:        p.Name,
		AILevel:     p.AILevel,
		IsStarter:   p.IsStarter,
		Hand:        p.Hand,
		Reserved:    p.Reserved,
		Tokens:      p.Tokens,
		Stacks:      p.Stacks,
		Bonuses:     rules.RewardBonuses(p),
		Trophies:    rules.TotalTrophies(p),
		TokenTotal:  rules.TotalTokens(p),
		Penalty:     rules.PenaltyCardCount(p),
		TrophyCards: rules.TrophyCardCount(p),
	}
}

// NewRoomData 公开桌面，牌堆只给出剩余张数
func NewRoomData(info *entities.RoomInfo, s *entities.GameState) RoomData {
	deckSizes := make(map[int]int, len(s.Decks))
	for _, level := range entities.Levels {
		deckSizes[level] = len(s.Decks[level])
	}
	current := ""
	if p := s.CurrentPlayer(); p != nil {
		current = p.ID
	}
	return RoomData{
		RoomInfo:           info,
		Turn:               s.Turn,
		CurrentPlayer:      current,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		TokenPool:          s.TokenPool,
		Market:             s.Market,
		DeckSizes:          deckSizes,
		PerTurn:            s.PerTurn,
		PendingReturn:      s.PendingReturn,
		EndTriggered:       s.EndTriggered,
		VictoryResolved:    s.VictoryResolved,
		Ranking:            s.Ranking,
	}
}

// WaitingMessage 开局前的房间同步
type WaitingMessage struct {
	Type     string             `json:"type"`
	PlayerID string             `json:"playerId"`
	RoomInfo *entities.RoomInfo `json:"roomInfo"`
	Players  []RoomPlayer       `json:"players"`
}
