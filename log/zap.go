package log

import (
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls the process logger.
type Config struct {
	Level       string   `mapstructure:"level"`
	Development bool     `mapstructure:"development"`
	RedactKeys  []string `mapstructure:"redact_keys"`
}

// NewZapLogger builds the process logger. Development mode uses the console
// encoder with colored levels; production uses the standard JSON encoder.
// Fields named in RedactKeys (credentials, tokens) are masked before they
// reach any sink.
func NewZapLogger(cfg Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if cfg.Development {
		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level, zapcore.DebugLevel))
		logger, err = zapConfig.Build()
	} else {
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level, zapcore.InfoLevel))
		logger, err = zapConfig.Build()
	}
	if err != nil {
		return nil, err
	}
	if len(cfg.RedactKeys) > 0 {
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return RedactFieldsCore(core, cfg.RedactKeys...)
		}))
	}
	return logger, nil
}

// NewEventLogger adapts the process logger for fx lifecycle events.
func NewEventLogger(log *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log}
}

func parseLevel(level string, fallback zapcore.Level) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	}
	return fallback
}
