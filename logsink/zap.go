package logsink

import (
	"net/http"

	"github.com/advdv/rintercept"
	"go.uber.org/zap"
)

type zapSink struct{ logs *zap.Logger }

// Zap logs to a zap logger.
func Zap(logs *zap.Logger) rintercept.Logger {
	return zapSink{logs.Named("rintercept")}
}

func (s zapSink) LogUnhandledServeError(err error) {
	s.logs.Error("unhandled server error", zap.Error(err))
}

func (s zapSink) LogImplicitFlushError(err error) {
	s.logs.Error("error while flushing implicitly", zap.Error(err))
}

func (s zapSink) LogCallbackFailure(err *rintercept.CallbackError) {
	s.logs.Error("interception callback failed",
		zap.String("stage", string(err.Stage)),
		zap.String("method", err.Method),
		zap.String("path", err.Path),
		zap.Error(err.Unwrap()))
}

func (s zapSink) LogEmptyContent(r *http.Request, status int) {
	s.logs.Warn("callback returned no content, sending an empty body",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status))
}

func (s zapSink) LogInvalidRedirect(r *http.Request, target string) {
	s.logs.Warn("invalid redirect target, sending the original response",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("target", target))
}
