package logger

import (
	"gsep-planner/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.Logger
}

// New builds a JSON logger in production and a coloured console logger
// otherwise.
func New(cfg *config.Config) *Logger {
	var zapCfg zap.Config

	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.EncoderConfig.TimeKey = "timestamp"

	l, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}

	return &Logger{l.Named("gsep")}
}

// Nop returns a logger that discards everything, for tests.
func Nop() *Logger {
	return &Logger{zap.NewNop()}
}

// Sync flushes buffered entries. Errors are dropped; syncing a console
// often fails harmlessly.
func (l *Logger) Sync() {
	_ = l.Logger.Sync()
}
