package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MySQLDSN      string
	JWTSecret     string
	AIDelay       time.Duration
	GameLogDir    string
	CardLibrary   string
	LogLevel      string
	Dev           bool
}

// Load 先尝试加载 .env，再读取环境变量
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("加载 %s 失败: %w", f, err)
		}
	}

	cfg := &Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8000"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		MySQLDSN:      os.Getenv("MYSQL_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		GameLogDir:    getEnv("GAME_LOG_DIR", "./game_logs"),
		CardLibrary:   os.Getenv("CARD_LIBRARY"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Dev:           os.Getenv("APP_ENV") == "dev",
	}

	db, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = db

	delay, err := getInt("AI_DELAY_MS", 420)
	if err != nil {
		return nil, err
	}
	if delay < 0 {
		return nil, fmt.Errorf("AI_DELAY_MS 不能为负数: %d", delay)
	}
	cfg.AIDelay = time.Duration(delay) * time.Millisecond
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s 不是整数 %q: %w", key, v, err)
	}
	return n, nil
}
