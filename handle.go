package rintercept

import (
	"context"
	"net/http"
)

// ResponseWriter implements the http.ResponseWriter but the underlying bytes are buffered. This allows
// middleware to reset the writer, to inspect what a handler produced and to formulate a completely new
// response before anything reaches the client.
type ResponseWriter interface {
	http.ResponseWriter
	Reset()
	Free()
	FlushBuffer() error
	BeforeFlush(fn func() error)
}

// Handler mirrors http.Handler but it serves with a buffered response and allows returning an error.
type Handler interface {
	ServeBHTTP(ctx context.Context, w ResponseWriter, r *http.Request) error
}

// HandlerFunc allow casting a function to imple [Handler].
type HandlerFunc func(context.Context, ResponseWriter, *http.Request) error

// ServeBHTTP implements the [Handler] interface.
func (f HandlerFunc) ServeBHTTP(ctx context.Context, w ResponseWriter, r *http.Request) error {
	return f(ctx, w, r)
}

// BareHandler describes how middleware servers HTTP requests. In this library the signature for
// handling middleware [BareHandler] is different from the signature of "leaf" handlers: [Handler].
type BareHandler interface {
	ServeBareBHTTP(w ResponseWriter, r *http.Request) error
}

// BareHandlerFunc allow casting a function to an implementation of [BareHandler].
type BareHandlerFunc func(ResponseWriter, *http.Request) error

// ServeBareBHTTP implements the [BareHandler] interface.
func (f BareHandlerFunc) ServeBareBHTTP(w ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// ToBare converts a leaf handler 'h' into a bare buffered handler.
func ToBare(h Handler) BareHandler {
	return BareHandlerFunc(func(w ResponseWriter, r *http.Request) error {
		return h.ServeBHTTP(r.Context(), w, r)
	})
}

// FromStd converts a standard library handler into a bare handler. The handler never returns an error.
func FromStd(h http.Handler) BareHandler {
	return BareHandlerFunc(func(w ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	})
}

// ToStd converts a bare handler into a standard library http.Handler. The implementation
// creates a buffered response writer and flushes it implicitly after serving the request.
func ToStd(h BareHandler, bufLimit int, logs Logger) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		bresp := newBufferResponse(resp, bufLimit)
		defer bresp.Free()

		err := h.ServeBareBHTTP(bresp, req)
		if err == nil {
			err = bresp.runHooks() // responses intercepted on the fly finalize here
		}

		if err != nil {
			logs.LogUnhandledServeError(err)
			if bresp.flushed {
				return // the client already received part of the response
			}

			bresp.Reset()

			// if all fails we don't want the client to end up with a white screen so
			// we render a 500 error with the standard text.
			http.Error(resp,
				http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError)

			return
		}

		if err := bresp.FlushBuffer(); err != nil {
			logs.LogImplicitFlushError(err)
		}
	})
}

// Std returns standard library middleware that serves the wrapped handler through the buffered
// middleware 'm'. It allows interception of plain [http.Handler] trees.
func Std(bufLimit int, logs Logger, m ...Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ToStd(Chain(FromStd(next), m...), bufLimit, logs)
	}
}
