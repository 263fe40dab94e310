package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"poke-splendor/repository"
	"poke-splendor/utils"
	"poke-splendor/ws"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "router-game-logs")
	if err != nil {
		panic(err)
	}
	logDir = dir
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type reply struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	repository.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, ws.Setup(ws.Settings{GameLogDir: logDir}))
	utils.SetAccessSecret("router-secret")
	t.Cleanup(func() {
		for _, id := range ws.RoomIDs() {
			ws.RemoveRoom(id)
		}
	})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	InitRouter(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) (int, reply) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func TestRoomEndpoints(t *testing.T) {
	r := newServer(t)

	code, _ := do(t, r, http.MethodPost, "/room/create", map[string]interface{}{"maxPlayers": 5, "userID": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, out := do(t, r, http.MethodPost, "/room/create", map[string]interface{}{"maxPlayers": 2, "userID": "alice", "aiLevels": []int{2, 2}}, "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, out.Msg)

	code, out = do(t, r, http.MethodPost, "/room/create", map[string]interface{}{"maxPlayers": 3, "userID": "alice", "aiLevels": []int{1}}, "")
	require.Equal(t, http.StatusOK, code)
	var created struct {
		RoomID string `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &created))
	require.Len(t, created.RoomID, 8)

	code, out = do(t, r, http.MethodGet, "/room/"+created.RoomID, nil, "")
	require.Equal(t, http.StatusOK, code)
	var room struct {
		MaxPlayers int `json:"maxPlayers"`
		RoomPlayer []struct {
			AILevel int `json:"aiLevel"`
		} `json:"roomPlayer"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &room))
	assert.Equal(t, 3, room.MaxPlayers)
	require.Len(t, room.RoomPlayer, 1)
	assert.Equal(t, 1, room.RoomPlayer[0].AILevel)

	code, out = do(t, r, http.MethodGet, "/room/list", nil, "")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Rooms []json.RawMessage `json:"rooms"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &list))
	assert.Len(t, list.Rooms, 1)

	code, _ = do(t, r, http.MethodPost, "/room/delete", map[string]string{"roomID": created.RoomID}, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodGet, "/room/"+created.RoomID, nil, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGameEndpointsNeedToken(t *testing.T) {
	r := newServer(t)

	code, _ := do(t, r, http.MethodGet, "/game/abc/state", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, out := do(t, r, http.MethodPost, "/auth/token", map[string]string{"userID": "alice"}, "")
	require.Equal(t, http.StatusOK, code)
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &tok))
	require.NotEmpty(t, tok.AccessToken)

	code, _ = do(t, r, http.MethodGet, "/game/abc/state", nil, tok.AccessToken)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, r, http.MethodPost, "/game/abc/save", nil, tok.AccessToken)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, r, http.MethodPost, "/game/abc/load", nil, tok.AccessToken)
	assert.Equal(t, http.StatusNotFound, code)
}
