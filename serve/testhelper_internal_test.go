package serve

import (
	"time"

	"github.com/advdv/rintercept"
	"go.uber.org/zap/zapcore"
)

type testEnv struct {
	level   zapcore.Level
	otelExp string
	file    LogFile
	policy  rintercept.PolicyEnvironment
}

func (e testEnv) port() int                   { return 8080 }
func (e testEnv) serviceName() string         { return "test" }
func (e testEnv) healthPath() string          { return "/health" }
func (e testEnv) metricsPath() string         { return "/metrics" }
func (e testEnv) logLevel() zapcore.Level     { return e.level }
func (e testEnv) logFile() LogFile            { return e.file }
func (e testEnv) bufferLimit() int            { return -1 }
func (e testEnv) writeTimeout() time.Duration { return 30 * time.Second }
func (e testEnv) otelExporter() string {
	if e.otelExp == "" {
		return "stdout"
	}
	return e.otelExp
}

func (e testEnv) interceptPolicy() rintercept.PolicyEnvironment {
	return e.policy
}
