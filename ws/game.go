package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"poke-splendor/const_data"
	"poke-splendor/dto"
	"poke-splendor/entities"
	"poke-splendor/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	ErrBadMessage   = errors.New("消息格式错误")
	ErrNotYourTurn  = errors.New("不是当前玩家的回合")
	ErrRoomFull     = errors.New("房间已满")
	ErrGameStarted  = errors.New("游戏已开始")
	ErrNotSeated    = errors.New("玩家不在房间中")
	ErrGameNotOver  = errors.New("游戏还没有结束")
	ErrNotRoomOwner = errors.New("只有房主可以操作")
)

// Settings 房间服务的运行参数
type Settings struct {
	AIDelay    time.Duration
	GameLogDir string
	Library    map[int][]entities.Card
	// OnGameEnd 对局结算后调用，用于归档
	OnGameEnd func(ctx context.Context, roomID string, info *entities.RoomInfo, s *entities.GameState) error
}

var settings = Settings{AIDelay: 420 * time.Millisecond, GameLogDir: "./game_logs"}

func Setup(s Settings) error {
	if s.Library == nil {
		lib, err := const_data.DefaultLibrary()
		if err != nil {
			return err
		}
		s.Library = lib.ByLevel()
	}
	if s.GameLogDir == "" {
		s.GameLogDir = "./game_logs"
	}
	settings = s
	return nil
}

// 房间内的所有连接
var Rooms = make(map[string][]dto.PlayerConn)
var roomLock sync.Mutex

// roomRuntime 房间级的运行时数据：状态修改互斥、AI 协程标记和取消
type roomRuntime struct {
	game   sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	aiBusy atomic.Bool
}

var runtimes = make(map[string]*roomRuntime)

func runtimeOf(roomID string) *roomRuntime {
	roomLock.Lock()
	defer roomLock.Unlock()
	rt, ok := runtimes[roomID]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		rt = &roomRuntime{ctx: ctx, cancel: cancel}
		runtimes[roomID] = rt
	}
	return rt
}

// RegisterRoom 新建房间时登记空的连接列表
func RegisterRoom(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	if _, ok := Rooms[roomID]; !ok {
		Rooms[roomID] = []dto.PlayerConn{}
	}
}

// RemoveRoom 关闭所有连接并停止房间内的 AI
func RemoveRoom(roomID string) {
	roomLock.Lock()
	defer roomLock.Unlock()
	for _, pc := range Rooms[roomID] {
		if pc.Conn != nil {
			pc.Conn.Close()
		}
	}
	delete(Rooms, roomID)
	if rt, ok := runtimes[roomID]; ok {
		rt.cancel()
		delete(runtimes, roomID)
	}
}

// RoomPlayers 返回连接列表的拷贝
func RoomPlayers(roomID string) ([]dto.PlayerConn, bool) {
	roomLock.Lock()
	defer roomLock.Unlock()
	players, ok := Rooms[roomID]
	if !ok {
		return nil, false
	}
	return append([]dto.PlayerConn(nil), players...), true
}

func RoomIDs() []string {
	roomLock.Lock()
	defer roomLock.Unlock()
	ids := make([]string, 0, len(Rooms))
	for id := range Rooms {
		ids = append(ids, id)
	}
	return ids
}

// 只写接口，虚拟连接只需要实现这部分
type WriteOnlyConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// 读写接口，供真实客户端连接用
type ReadWriteConn interface {
	WriteOnlyConn
	ReadMessage() (messageType int, p []byte, err error)
}

// 玩家断开连接后标记为离线，等待重连
func cleanupOnDisconnect(roomID, playerID string, conn WriteOnlyConn) {
	roomLock.Lock()
	for i, pc := range Rooms[roomID] {
		if pc.PlayerID == playerID && pc.Conn == conn {
			Rooms[roomID][i].Online = false
			Rooms[roomID][i].Conn = nil
			logger.L.Infow("玩家标记为离线", "roomID", roomID, "playerID", playerID)
			break
		}
	}
	roomLock.Unlock()
	BroadcastToRoom(roomID)
}

type messageHandler func(conn WriteOnlyConn, roomID, playerID string, msgMap map[string]interface{}) error

var messageHandlers map[string]messageHandler

func init() {
	messageHandlers = map[string]messageHandler{
		"ready":         handleReadyMessage,
		"add_ai":        handleAddAIMessage,
		"take3":         handleTake3Message,
		"take2":         handleTake2Message,
		"reserve_card":  handleReserveCardMessage,
		"buy_card":      handleBuyCardMessage,
		"evolve_card":   handleEvolveCardMessage,
		"return_tokens": handleReturnTokensMessage,
		"end_turn":      handleEndTurnMessage,
		"restart_game":  handleRestartGameMessage,
		"game_end":      handleGameEndMessage,
		"play_audio":    handlePlayAudioMessage,
	}
}

// dispatch 处理一条客户端消息，失败时只回复发送者
func dispatch(conn WriteOnlyConn, roomID, playerID string, msg []byte) {
	msgMap := make(map[string]interface{})
	if err := json.Unmarshal(msg, &msgMap); err != nil {
		logger.L.Warnw("⚠️ 消息解析失败", "roomID", roomID, "playerID", playerID, "err", err)
		sendError(conn, ErrBadMessage)
		return
	}
	msgType, _ := msgMap["type"].(string)
	handler, found := messageHandlers[msgType]
	if !found {
		logger.L.Warnw("⚠️ 未知的消息类型", "type", msgType, "playerID", playerID)
		sendError(conn, ErrBadMessage)
		return
	}
	if err := handler(conn, roomID, playerID, msgMap); err != nil {
		logger.L.Infow("❌ 操作被拒绝", "roomID", roomID, "playerID", playerID, "type", msgType, "err", err)
		sendError(conn, err)
		return
	}
	BroadcastToRoom(roomID)
}

// 持续监听客户端消息
func listenAndBroadcastMessages(conn ReadWriteConn, roomID, playerID string) {
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.L.Debugw("读取消息结束", "playerID", playerID, "err", err)
			return
		}
		dispatch(conn, roomID, playerID, msg)
	}
}

// WebSocket 主入口（处理每个连接）
func HandleWebSocket(c *gin.Context) {
	roomID := c.Query("roomID")
	playerID := c.Query("userID")

	wsConn, err := upgradeConnection(c)
	if err != nil {
		return
	}
	conn := &dto.RealConn{Conn: wsConn}
	defer conn.Close()

	if roomID == "" || playerID == "" {
		sendError(conn, ErrBadMessage)
		return
	}
	if err := validateAndJoinRoom(roomID, playerID, conn); err != nil {
		logger.L.Infow("❌ 加入房间失败", "roomID", roomID, "playerID", playerID, "err", err)
		sendError(conn, err)
		return
	}
	BroadcastToRoom(roomID)
	defer cleanupOnDisconnect(roomID, playerID, conn)
	listenAndBroadcastMessages(conn, roomID, playerID)
}

func sendError(conn WriteOnlyConn, err error) {
	data, _ := json.Marshal(map[string]string{"type": "error", "message": err.Error()})
	if werr := conn.WriteMessage(websocket.TextMessage, data); werr != nil {
		logger.L.Debugw("发送错误消息失败", "err", werr)
	}
}
