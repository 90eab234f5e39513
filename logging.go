package mqttengine

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// FileLoggerConfig configures a rotating file sink for NewFileLogger.
type FileLoggerConfig struct {
	// Path is the log file's location. Required.
	Path string

	// MaxSizeMB is the size a log file reaches before it is rotated.
	MaxSizeMB int

	// MaxBackups is how many rotated files are kept.
	MaxBackups int

	// MaxAgeDays is how long a rotated file is kept, regardless of
	// MaxBackups.
	MaxAgeDays int
}

// NewFileLogger builds a zap logger that writes JSON-encoded entries to a
// lumberjack-rotated file. Intended for hosts that want engine diagnostics
// on disk rather than on stderr; callers who want stdout/stderr
// logging can just pass zap.NewProduction() (or similar) to WithLogger
// instead.
func NewFileLogger(cfg FileLoggerConfig) *zap.Logger {
	sink := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(sink),
		zap.InfoLevel,
	)
	return zap.New(core)
}
