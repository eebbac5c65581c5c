package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
)

// New builds a zap logger from the logging configuration
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.DisableCaller = !cfg.IncludeCaller
	zapCfg.DisableStacktrace = !cfg.IncludeStacktrace
	if !cfg.Sampling {
		zapCfg.Sampling = nil
	}

	if cfg.Format == "text" {
		zapCfg.Encoding = "console"
		zapCfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	switch cfg.Output {
	case "file":
		zapCfg.OutputPaths = []string{cfg.FilePath}
	case "stdout":
		zapCfg.OutputPaths = []string{"stdout"}
	default:
		zapCfg.OutputPaths = []string{"stderr"}
	}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ZapLogger adapts a zap logger to the application logging port
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger wraps logger
func NewZapLogger(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{logger: logger}
}

var _ common.Logger = (*ZapLogger)(nil)

// Log writes message at level with metadata as structured fields
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	for key, value := range metadata {
		fields = append(fields, zap.Any(key, value))
	}

	switch strings.ToUpper(level) {
	case common.LevelDebug:
		l.logger.Debug(message, fields...)
	case common.LevelWarn, "WARN":
		l.logger.Warn(message, fields...)
	case common.LevelError:
		l.logger.Error(message, fields...)
	default:
		l.logger.Info(message, fields...)
	}
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
