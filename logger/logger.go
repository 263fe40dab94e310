package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L 全局日志，Init 之前是空实现
var L = zap.NewNop().Sugar()

// Init 按级别初始化，dev 模式用彩色控制台输出
func Init(level string, dev bool) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("日志级别不合法 %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("创建日志失败: %w", err)
	}
	L = base.Sugar()
	return nil
}

// Named 带模块名的子日志
func Named(name string) *zap.SugaredLogger {
	return L.Named(name)
}

func Sync() {
	_ = L.Sync()
}
