package ws

import (
	"fmt"
	"net/http"
	"path/filepath"
	"reflect"
	"strconv"

	"poke-splendor/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// 将 HTTP 请求升级为 WebSocket 连接
func upgradeConnection(c *gin.Context) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Warnw("⚠️ WebSocket 升级失败", "err", err)
	}
	return conn, err
}

// 自定义 HookFunc，把字符串转换成 int
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

// decodePayload 把消息里的 payload 解到目标结构体
func decodePayload(msgMap map[string]interface{}, out interface{}) error {
	raw, ok := msgMap["payload"]
	if !ok || raw == nil {
		return fmt.Errorf("%w: 缺少 payload", ErrBadMessage)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	return nil
}

func getGameLogFilePath(roomID string) string {
	start, err := GetGameStartTime(roomID)
	if err != nil || start == "" {
		start = "unknown"
	}
	return filepath.Join(settings.GameLogDir, fmt.Sprintf("%s_%s.jsonl", roomID, start))
}
