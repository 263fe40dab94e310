package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"poke-splendor/logger"

	"github.com/go-sql-driver/mysql"
)

const createMatchResults = `CREATE TABLE IF NOT EXISTS match_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_id VARCHAR(32) NOT NULL,
	game_id VARCHAR(64) NOT NULL,
	winner VARCHAR(64) NOT NULL,
	turns INT NOT NULL,
	ranking JSON NOT NULL,
	finished_at DATETIME NOT NULL,
	INDEX idx_room (room_id)
)`

// MatchRecord 一局结束后的归档记录
type MatchRecord struct {
	RoomID     string
	GameID     string
	Winner     string
	Turns      int
	Ranking    []byte // JSON
	FinishedAt time.Time
}

// MatchStore 对局结果归档，写入 match_results 表
type MatchStore struct {
	db *sql.DB
}

// ParseMatchDSN 校验 DSN 并补上 parseTime
func ParseMatchDSN(dsn string) (*mysql.Config, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("MYSQL_DSN 不合法: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Loc == nil {
		cfg.Loc = time.Local
	}
	return cfg, nil
}

func OpenMatchStore(ctx context.Context, dsn string) (*MatchStore, error) {
	cfg, err := ParseMatchDSN(dsn)
	if err != nil {
		return nil, err
	}
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建 MySQL 连接失败: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("MySQL 连接失败: %w", err)
	}
	if _, err := db.ExecContext(ctx, createMatchResults); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建 match_results 表失败: %w", err)
	}
	logger.L.Infow("✅ MySQL 连接成功", "addr", cfg.Addr, "db", cfg.DBName)
	return &MatchStore{db: db}, nil
}

func (s *MatchStore) SaveMatch(ctx context.Context, rec MatchRecord) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO match_results (room_id, game_id, winner, turns, ranking, finished_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.RoomID, rec.GameID, rec.Winner, rec.Turns, string(rec.Ranking), rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("写入对局结果失败: %w", err)
	}
	return nil
}

func (s *MatchStore) Close() error {
	return s.db.Close()
}
