package repository

import (
	"context"
	"fmt"

	"poke-splendor/config"
	"poke-splendor/logger"

	"github.com/go-redis/redis/v8"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

func InitRedis(cfg *config.Config) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := Rdb.Ping(Ctx).Result(); err != nil {
		return fmt.Errorf("Redis 连接失败: %w", err)
	}
	logger.L.Infow("✅ Redis 连接成功", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return nil
}
