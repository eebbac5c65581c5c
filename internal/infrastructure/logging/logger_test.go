package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/factory-planner/internal/application/common"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/config"
	"github.com/andrescamacho/factory-planner/internal/infrastructure/logging"
)

func TestZapLogger_MapsLevelsAndFields(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLogger(zap.New(core))

	// Act
	logger.Log(common.LevelDebug, "calculated", map[string]interface{}{"recipe": "iron-plate"})
	logger.Log(common.LevelWarn, "static warnings", nil)
	logger.Log(common.LevelError, "failed", nil)
	logger.Log("INFO", "done", nil)

	// Assert
	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "iron-plate", entries[0].ContextMap()["recipe"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}

func TestNew_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Logging
	cfg.Level = "warn"

	logger, err := logging.New(cfg)

	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := logging.New(config.LoggingConfig{Level: "verbose", Format: "json", Output: "stderr"})

	assert.Error(t, err)
}
