package logsink

import (
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/sirupsen/logrus"
)

type logrusSink struct{ logs logrus.FieldLogger }

// Logrus logs to a logrus logger or entry.
func Logrus(logs logrus.FieldLogger) rintercept.Logger {
	return logrusSink{logs.WithField("component", "rintercept")}
}

func (s logrusSink) LogUnhandledServeError(err error) {
	s.logs.WithError(err).Error("unhandled server error")
}

func (s logrusSink) LogImplicitFlushError(err error) {
	s.logs.WithError(err).Error("error while flushing implicitly")
}

func (s logrusSink) LogCallbackFailure(err *rintercept.CallbackError) {
	s.logs.WithFields(logrus.Fields{
		"stage":  string(err.Stage),
		"method": err.Method,
		"path":   err.Path,
	}).WithError(err.Unwrap()).Error("interception callback failed")
}

func (s logrusSink) LogEmptyContent(r *http.Request, status int) {
	s.logs.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	}).Warn("callback returned no content, sending an empty body")
}

func (s logrusSink) LogInvalidRedirect(r *http.Request, target string) {
	s.logs.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"target": target,
	}).Warn("invalid redirect target, sending the original response")
}
