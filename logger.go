package rintercept

import (
	"log"
	"net/http"
	"sync/atomic"
	"testing"
)

// Logger can be implemented to get informed about important states.
type Logger interface {
	LogUnhandledServeError(err error)
	LogImplicitFlushError(err error)
	LogCallbackFailure(err *CallbackError)
	LogEmptyContent(r *http.Request, status int)
	LogInvalidRedirect(r *http.Request, target string)
}

type stdLogger struct{ *log.Logger }

func (l stdLogger) LogUnhandledServeError(err error) {
	l.Logger.Printf("rintercept: unhandled server error: %s", err)
}

func (l stdLogger) LogImplicitFlushError(err error) {
	l.Logger.Printf("rintercept: error while flushing implicitly: %s", err)
}

func (l stdLogger) LogCallbackFailure(err *CallbackError) {
	l.Logger.Printf("rintercept: %s", err)
}

func (l stdLogger) LogEmptyContent(r *http.Request, status int) {
	l.Logger.Printf("rintercept: %s %s: callback returned no content for status %d, sending an empty body",
		r.Method, r.URL.Path, status)
}

func (l stdLogger) LogInvalidRedirect(r *http.Request, target string) {
	l.Logger.Printf("rintercept: %s %s: invalid redirect target %q, sending the original response",
		r.Method, r.URL.Path, target)
}

func NewStdLogger(l *log.Logger) Logger {
	return stdLogger{l}
}

type TestLogger struct {
	tb testing.TB

	NumLogUnhandledServeError int64
	NumLogImplicitFlushError  int64
	NumLogCallbackFailure     int64
	NumLogEmptyContent        int64
	NumLogInvalidRedirect     int64
}

func NewTestLogger(tb testing.TB) *TestLogger {
	return &TestLogger{tb: tb}
}

func (l *TestLogger) LogUnhandledServeError(err error) {
	atomic.AddInt64(&l.NumLogUnhandledServeError, 1)
	l.tb.Logf("rintercept: unhandled server error: %s", err)
}

func (l *TestLogger) LogImplicitFlushError(err error) {
	atomic.AddInt64(&l.NumLogImplicitFlushError, 1)
	l.tb.Logf("rintercept: error while flushing implicitly: %s", err)
}

func (l *TestLogger) LogCallbackFailure(err *CallbackError) {
	atomic.AddInt64(&l.NumLogCallbackFailure, 1)
	l.tb.Logf("rintercept: %s", err)
}

func (l *TestLogger) LogEmptyContent(r *http.Request, status int) {
	atomic.AddInt64(&l.NumLogEmptyContent, 1)
	l.tb.Logf("rintercept: %s %s: no content for status %d", r.Method, r.URL.Path, status)
}

func (l *TestLogger) LogInvalidRedirect(r *http.Request, target string) {
	atomic.AddInt64(&l.NumLogInvalidRedirect, 1)
	l.tb.Logf("rintercept: %s %s: invalid redirect target %q", r.Method, r.URL.Path, target)
}

var _ Logger = &TestLogger{}
