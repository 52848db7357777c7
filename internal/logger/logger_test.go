package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"invoicescan/internal/config"
	"invoicescan/internal/logger"
)

func TestNew_Levels(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		log, err := logger.New(&config.LogConfig{Level: "WARN", Format: format})
		require.NoError(t, err, format)

		assert.False(t, log.Desugar().Core().Enabled(zapcore.InfoLevel), format)
		assert.True(t, log.Desugar().Core().Enabled(zapcore.WarnLevel), format)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	log, err := logger.New(&config.LogConfig{Level: "loud", Format: "console"})

	assert.Nil(t, log)
	assert.ErrorContains(t, err, "parsing log level")
}
