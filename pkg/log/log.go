package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogs configures the global zap logger and returns the sugared form.
// Unknown levels fall back to info.
func InitLogs(level string) *zap.SugaredLogger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	zap.ReplaceGlobals(logger)
	return logger.Sugar()
}
