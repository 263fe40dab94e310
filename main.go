package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poke-splendor/config"
	"poke-splendor/const_data"
	"poke-splendor/logger"
	"poke-splendor/repository"
	"poke-splendor/router"
	"poke-splendor/service"
	"poke-splendor/utils"
	"poke-splendor/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel, cfg.Dev); err != nil {
		return err
	}
	defer logger.Sync()

	if err := repository.InitRedis(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lib, err := const_data.LoadLibrary(cfg.CardLibrary)
	if err != nil {
		return err
	}

	settings := ws.Settings{
		AIDelay:    cfg.AIDelay,
		GameLogDir: cfg.GameLogDir,
		Library:    lib.ByLevel(),
	}
	if cfg.MySQLDSN != "" {
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		store, err := repository.OpenMatchStore(openCtx, cfg.MySQLDSN)
		cancel()
		if err != nil {
			return err
		}
		defer store.Close()
		settings.OnGameEnd = service.NewMatchArchiver(store)
	} else {
		logger.L.Warn("⚠️ 未配置 MYSQL_DSN，对局结果不会归档")
	}
	if err := ws.Setup(settings); err != nil {
		return err
	}

	if cfg.JWTSecret == "" {
		logger.L.Warn("⚠️ 未配置 JWT_SECRET，使用随机密钥，重启后 token 失效")
		cfg.JWTSecret = uuid.NewString()
	}
	utils.SetAccessSecret(cfg.JWTSecret)

	go ws.ScheduleDailyRoomReset(ctx)

	if !cfg.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// 允许所有域名、所有方法、所有 header
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.InitRouter(r)

	logger.L.Infow("✅ 服务启动", "addr", cfg.HTTPAddr, "cards", lib.Size())
	return r.Run(cfg.HTTPAddr)
}
