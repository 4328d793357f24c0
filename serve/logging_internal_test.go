package serve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, tt := range []struct {
		name  string
		level zapcore.Level
	}{
		{"info level", zapcore.InfoLevel},
		{"debug level", zapcore.DebugLevel},
		{"warn level", zapcore.WarnLevel},
		{"error level", zapcore.ErrorLevel},
	} {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(testEnv{level: tt.level})
			require.NoError(t, err)
			require.NotNil(t, logger)

			assert.True(t, logger.Core().Enabled(tt.level))
			assert.False(t, logger.Core().Enabled(tt.level-1))
		})
	}
}

func TestNewLoggerToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewLogger(testEnv{level: zapcore.InfoLevel, file: LogFile{Path: path, MaxSizeMB: 1}})
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "to file", gjson.GetBytes(data, "msg").String())
	assert.Equal(t, "test", gjson.GetBytes(data, "service").String())
}
