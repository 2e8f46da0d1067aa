package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a new zap logger based on the configuration.
func New(cfg *Config) (*zap.Logger, error) {
	var config zap.Config

	if cfg.Level == "debug" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		if cfg.Level != "" {
			level, err := zap.ParseAtomicLevel(cfg.Level)
			if err != nil {
				return nil, err
			}
			config.Level = level
		}
	}

	if cfg.Format == "console" {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		config.DisableStacktrace = true
	} else {
		config.Encoding = "json"
	}

	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.MessageKey = "message"

	return config.Build()
}

// WithRun returns a logger that tags every entry with the run it belongs to.
func WithRun(l *zap.Logger, runID, vendor, filename string) *zap.Logger {
	fields := make([]zap.Field, 0, 3)
	if runID != "" {
		fields = append(fields, zap.String("run_id", runID))
	}
	if vendor != "" {
		fields = append(fields, zap.String("vendor", vendor))
	}
	if filename != "" {
		fields = append(fields, zap.String("filename", filename))
	}
	return l.With(fields...)
}
