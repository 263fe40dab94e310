package repository

import (
	"testing"

	"poke-splendor/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, InitRedis(&config.Config{RedisAddr: mr.Addr()}))
	require.NoError(t, Rdb.Set(Ctx, "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	down, err := miniredis.Run()
	require.NoError(t, err)
	addr := down.Addr()
	down.Close()
	assert.Error(t, InitRedis(&config.Config{RedisAddr: addr}))
}

func TestParseMatchDSN(t *testing.T) {
	cfg, err := ParseMatchDSN("game:secret@tcp(db:3306)/poke?charset=utf8mb4")
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "db:3306", cfg.Addr)
	assert.Equal(t, "poke", cfg.DBName)
	assert.Equal(t, "game", cfg.User)
	assert.NotNil(t, cfg.Loc)

	_, err = ParseMatchDSN("not a dsn")
	assert.Error(t, err)
}
