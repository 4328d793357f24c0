package logsink

import (
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/go-logr/logr"
)

type logrSink struct{ logs logr.Logger }

// Logr logs to a logr logger. Warnings are logged at verbosity 0.
func Logr(logs logr.Logger) rintercept.Logger {
	return logrSink{logs.WithName("rintercept")}
}

func (s logrSink) LogUnhandledServeError(err error) {
	s.logs.Error(err, "unhandled server error")
}

func (s logrSink) LogImplicitFlushError(err error) {
	s.logs.Error(err, "error while flushing implicitly")
}

func (s logrSink) LogCallbackFailure(err *rintercept.CallbackError) {
	s.logs.Error(err.Unwrap(), "interception callback failed",
		"stage", string(err.Stage), "method", err.Method, "path", err.Path)
}

func (s logrSink) LogEmptyContent(r *http.Request, status int) {
	s.logs.Info("callback returned no content, sending an empty body",
		"method", r.Method, "path", r.URL.Path, "status", status)
}

func (s logrSink) LogInvalidRedirect(r *http.Request, target string) {
	s.logs.Info("invalid redirect target, sending the original response",
		"method", r.Method, "path", r.URL.Path, "target", target)
}
