package logsink

import (
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/rs/zerolog"
)

type zerologSink struct{ logs zerolog.Logger }

// Zerolog logs to a zerolog logger.
func Zerolog(logs zerolog.Logger) rintercept.Logger {
	return zerologSink{logs.With().Str("component", "rintercept").Logger()}
}

func (s zerologSink) LogUnhandledServeError(err error) {
	s.logs.Error().Err(err).Msg("unhandled server error")
}

func (s zerologSink) LogImplicitFlushError(err error) {
	s.logs.Error().Err(err).Msg("error while flushing implicitly")
}

func (s zerologSink) LogCallbackFailure(err *rintercept.CallbackError) {
	s.logs.Error().
		Str("stage", string(err.Stage)).
		Str("method", err.Method).
		Str("path", err.Path).
		Err(err.Unwrap()).
		Msg("interception callback failed")
}

func (s zerologSink) LogEmptyContent(r *http.Request, status int) {
	s.logs.Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("callback returned no content, sending an empty body")
}

func (s zerologSink) LogInvalidRedirect(r *http.Request, target string) {
	s.logs.Warn().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("target", target).
		Msg("invalid redirect target, sending the original response")
}
