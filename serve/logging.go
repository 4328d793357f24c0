package serve

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a zap logger configured from the environment.
// LOG_LEVEL controls the level (debug, info, warn, error). When LOG_FILE is set the
// logs are written to a rotated file instead of stderr.
func NewLogger(env Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(env.logLevel())
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fields := zap.Fields(zap.String("service", env.serviceName()))

	lf := env.logFile()
	if lf.Path == "" {
		return cfg.Build(fields)
	}

	if err := os.MkdirAll(filepath.Dir(lf.Path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	rotator := &lumberjack.Logger{
		Filename:   lf.Path,
		MaxSize:    lf.MaxSizeMB,
		MaxBackups: lf.MaxBackups,
		Compress:   lf.Compress,
		LocalTime:  true,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg.EncoderConfig), zapcore.AddSync(rotator), cfg.Level)
	return zap.New(core, zap.AddCaller(), fields), nil
}
