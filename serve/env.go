package serve

import (
	"time"

	"github.com/advdv/rintercept"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// Environment defines the interface that all environment configurations must implement.
// Embed BaseEnvironment in your struct to satisfy this interface.
type Environment interface {
	port() int
	serviceName() string
	healthPath() string
	metricsPath() string
	logLevel() zapcore.Level
	logFile() LogFile
	otelExporter() string
	bufferLimit() int
	writeTimeout() time.Duration
	interceptPolicy() rintercept.PolicyEnvironment
}

// LogFile configures rotated file output for the logger. Logs go to stderr when Path is empty.
type LogFile struct {
	Path       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`
	Compress   bool   `env:"LOG_FILE_COMPRESS" envDefault:"false"`
}

// BaseEnvironment contains the environment variables every server reads.
// Embed this in your custom environment struct.
type BaseEnvironment struct {
	Port        int           `env:"PORT,required"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"rintercept"`
	HealthPath  string        `env:"HEALTH_PATH" envDefault:"/health"`
	MetricsPath string        `env:"METRICS_PATH" envDefault:"/metrics"`
	LogLevel    zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     LogFile
	// OtelExporter selects where spans go: "stdout" or "none".
	OtelExporter string `env:"OTEL_EXPORTER" envDefault:"stdout"`
	// BufferLimit caps the bytes a response may buffer, -1 means unlimited.
	BufferLimit  int           `env:"RESPONSE_BUFFER_LIMIT" envDefault:"-1"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	rintercept.PolicyEnvironment
}

func (e BaseEnvironment) port() int {
	return e.Port
}

func (e BaseEnvironment) serviceName() string {
	return e.ServiceName
}

func (e BaseEnvironment) healthPath() string {
	return e.HealthPath
}

func (e BaseEnvironment) metricsPath() string {
	return e.MetricsPath
}

func (e BaseEnvironment) logLevel() zapcore.Level {
	return e.LogLevel
}

func (e BaseEnvironment) logFile() LogFile {
	return e.LogFile
}

func (e BaseEnvironment) otelExporter() string {
	return e.OtelExporter
}

func (e BaseEnvironment) bufferLimit() int {
	return e.BufferLimit
}

func (e BaseEnvironment) writeTimeout() time.Duration {
	return e.WriteTimeout
}

func (e BaseEnvironment) interceptPolicy() rintercept.PolicyEnvironment {
	return e.PolicyEnvironment
}

var _ Environment = BaseEnvironment{}

// ParseEnv parses environment variables into the given Environment type.
func ParseEnv[E Environment]() func() (E, error) {
	return func() (e E, err error) {
		if err := env.Parse(&e); err != nil {
			return e, errors.Wrap(err, "failed to parse environment")
		}
		return e, nil
	}
}
