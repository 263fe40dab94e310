package service

import (
	"os"
	"testing"

	"poke-splendor/const_data"
	"poke-splendor/entities"
	"poke-splendor/repository"
	"poke-splendor/rules"
	"poke-splendor/ws"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var logDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-game-logs")
	if err != nil {
		panic(err)
	}
	logDir = dir
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func setup(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	repository.Rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, ws.Setup(ws.Settings{GameLogDir: logDir}))
	t.Cleanup(func() {
		for _, id := range ws.RoomIDs() {
			ws.RemoveRoom(id)
		}
	})
}

func newState(t *testing.T, ids ...string) *entities.GameState {
	t.Helper()
	seats := make([]rules.Seat, len(ids))
	for i, id := range ids {
		seats[i] = rules.Seat{ID: id, Name: id, AILevel: entities.DisabledAILevel}
	}
	s, err := rules.NewGame(testLibrary(t), seats, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	return s
}

func testLibrary(t *testing.T) map[int][]entities.Card {
	t.Helper()
	lib, err := const_data.DefaultLibrary()
	require.NoError(t, err)
	return lib.ByLevel()
}
