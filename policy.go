package rintercept

import (
	"log"
	"net/http"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// ErrorHandler is informed about every failed callback. It receives the original response as it
// would be sent if the error is suppressed.
type ErrorHandler func(err error, r *http.Request, resp OriginalResponse)

// OriginalResponse is a read-only view on the response a callback failed on.
type OriginalResponse struct {
	Status int
	Header http.Header
}

// LoggingPolicy controls the logging of callback failures and warnings.
type LoggingPolicy struct {
	Enabled bool
	Sink    Logger
}

// ErrorPolicy controls how callback failures are contained.
type ErrorPolicy struct {
	// Rethrow returns callback failures to the host pipeline instead of sending the original response.
	Rethrow bool
	OnError ErrorHandler
}

// Policy is the process-wide configuration of an [Interceptor].
type Policy struct {
	Logging       LoggingPolicy
	ErrorHandling ErrorPolicy
}

// DefaultPolicy logs to the standard logger and suppresses callback failures.
func DefaultPolicy() Policy {
	return Policy{
		Logging: LoggingPolicy{Enabled: true, Sink: NewStdLogger(log.Default())},
	}
}

func (p Policy) logger() Logger {
	if !p.Logging.Enabled || p.Logging.Sink == nil {
		return nil
	}

	return p.Logging.Sink
}

// PolicyOption changes a single setting of a policy.
type PolicyOption func(*Policy)

// WithLogging enables or disables logging.
func WithLogging(enabled bool) PolicyOption {
	return func(p *Policy) { p.Logging.Enabled = enabled }
}

// WithSink sets where log entries go. A nil sink leaves the current sink in place.
func WithSink(sink Logger) PolicyOption {
	return func(p *Policy) {
		if sink != nil {
			p.Logging.Sink = sink
		}
	}
}

// WithRethrow configures whether callback failures are returned to the host pipeline.
func WithRethrow(rethrow bool) PolicyOption {
	return func(p *Policy) { p.ErrorHandling.Rethrow = rethrow }
}

// WithOnError sets the error handler. A nil handler removes it.
func WithOnError(fn ErrorHandler) PolicyOption {
	return func(p *Policy) { p.ErrorHandling.OnError = fn }
}

// PolicyEnvironment holds the policy settings that can be read from the environment.
type PolicyEnvironment struct {
	// Mode is the deployment mode, logging is off by default in "production".
	Mode string `env:"APP_ENV" envDefault:"development"`
	// Logging overrides the mode derived logging default.
	Logging *bool `env:"RINTERCEPT_LOGGING"`
	// Rethrow returns callback failures to the host pipeline.
	Rethrow bool `env:"RINTERCEPT_RETHROW" envDefault:"false"`
}

// Policy builds the policy described by the environment, logging to 'sink'.
func (e PolicyEnvironment) Policy(sink Logger) Policy {
	enabled := e.Mode != "production"
	if e.Logging != nil {
		enabled = *e.Logging
	}

	return Policy{
		Logging:       LoggingPolicy{Enabled: enabled, Sink: sink},
		ErrorHandling: ErrorPolicy{Rethrow: e.Rethrow},
	}
}

// PolicyFromEnv reads the policy from the process environment, logging to the standard logger.
func PolicyFromEnv() (Policy, error) {
	penv, err := env.ParseAs[PolicyEnvironment]()
	if err != nil {
		return Policy{}, errors.Wrap(err, "parse policy environment")
	}

	return penv.Policy(NewStdLogger(log.Default())), nil
}
