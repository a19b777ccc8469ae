package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"yashubustudio/symptomcheck/diagnosis"
)

func TestNewLevels(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := New(diagnosis.LogConfig{Level: "info", Format: format})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(diagnosis.LogConfig{Level: "verbose"})
	assert.Error(t, err)
}
