package servetest

import (
	"strconv"
	"testing"
)

// Env provides a chainable builder for setting [serve.BaseEnvironment] env vars
// via t.Setenv. Create one with [SetBaseEnv].
type Env struct {
	t testing.TB
}

// SetBaseEnv sets the [serve.BaseEnvironment] env vars to test defaults.
// Port is required because each test must use a unique port to avoid collisions.
//
// Defaults:
//   - SERVICE_NAME: "test"
//   - HEALTH_PATH: "/health"
//   - METRICS_PATH: "/metrics"
//   - OTEL_EXPORTER: "none"
//   - APP_ENV: "test"
//
// Use the returned [Env] to override individual values:
//
//	servetest.SetBaseEnv(t, 18085).ServiceName("svc").Rethrow(true)
func SetBaseEnv(t testing.TB, port int) *Env {
	t.Helper()
	t.Setenv("PORT", strconv.Itoa(port))
	t.Setenv("SERVICE_NAME", "test")
	t.Setenv("HEALTH_PATH", "/health")
	t.Setenv("METRICS_PATH", "/metrics")
	t.Setenv("OTEL_EXPORTER", "none")
	t.Setenv("APP_ENV", "test")
	return &Env{t: t}
}

// ServiceName overrides SERVICE_NAME.
func (e *Env) ServiceName(name string) *Env {
	e.t.Helper()
	e.t.Setenv("SERVICE_NAME", name)
	return e
}

// HealthPath overrides HEALTH_PATH.
func (e *Env) HealthPath(path string) *Env {
	e.t.Helper()
	e.t.Setenv("HEALTH_PATH", path)
	return e
}

// BufferLimit overrides RESPONSE_BUFFER_LIMIT.
func (e *Env) BufferLimit(n int) *Env {
	e.t.Helper()
	e.t.Setenv("RESPONSE_BUFFER_LIMIT", strconv.Itoa(n))
	return e
}

// Mode overrides APP_ENV.
func (e *Env) Mode(mode string) *Env {
	e.t.Helper()
	e.t.Setenv("APP_ENV", mode)
	return e
}

// Rethrow overrides RINTERCEPT_RETHROW.
func (e *Env) Rethrow(v bool) *Env {
	e.t.Helper()
	e.t.Setenv("RINTERCEPT_RETHROW", strconv.FormatBool(v))
	return e
}
