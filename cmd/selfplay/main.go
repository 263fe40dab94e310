// selfplay 批量跑 AI 对局并输出统计，用于调难度
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"poke-splendor/config"
	"poke-splendor/const_data"
	"poke-splendor/logger"
	"poke-splendor/sim"
)

var (
	games    int
	seed     uint64
	workers  int
	levels   string
	maxTurns int
	library  string
	verbose  bool
)

func init() {
	flag.IntVar(&games, "games", 100, "对局数")
	flag.Uint64Var(&seed, "seed", 0, "批次种子，0 表示使用当前时间")
	flag.IntVar(&workers, "workers", 0, "并发数，0 表示 CPU 核数")
	flag.StringVar(&levels, "levels", "2,2", "每个座位的 AI 等级，逗号分隔，2-4 个")
	flag.IntVar(&maxTurns, "max-turns", 200, "单局回合上限")
	flag.StringVar(&library, "library", "", "卡牌库 JSON 路径，默认读取 CARD_LIBRARY 或内置卡牌")
	flag.BoolVar(&verbose, "verbose", false, "输出调试日志")
}

func parseLevels(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("AI 等级不合法 %q: %w", part, err)
		}
		out = append(out, n)
	}
	return out, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logLevel := cfg.LogLevel
	if verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, cfg.Dev); err != nil {
		return err
	}
	defer logger.Sync()

	if library == "" {
		library = cfg.CardLibrary
	}
	lib, err := const_data.LoadLibrary(library)
	if err != nil {
		return err
	}
	aiLevels, err := parseLevels(levels)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	stats, err := sim.RunBatch(ctx, sim.BatchConfig{
		Games:    games,
		Seed:     seed,
		Workers:  workers,
		AILevels: aiLevels,
		MaxTurns: maxTurns,
		Library:  lib.ByLevel(),
	})
	logger.L.Infow("✅ 自博弈完成", "games", stats.Games, "seed", seed, "elapsed", time.Since(start))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(struct {
		Seed   uint64         `json:"seed"`
		Levels []int          `json:"levels"`
		Stats  sim.BatchStats `json:"stats"`
	}{seed, aiLevels, stats}); encErr != nil {
		return encErr
	}
	return err
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
