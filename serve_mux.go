package rintercept

import (
	"context"
	"log"
	"net/http"
	"sync"
)

// ServeMux routes requests to buffered handlers. Interception middleware registered with
// [ServeMux.Use] wraps every route, and also the mux's own 404 and 405 replies, so status gates
// see requests that match no route. Routes can be named for reversal with [ServeMux.Reverse].
type ServeMux struct {
	logs     Logger
	bufLimit int
	reverser *Reverser
	mux      *http.ServeMux

	// sealed is set by the first route (or unmatched request); interceptors are fixed after.
	sealed       bool
	interceptors []Middleware

	unmatched     http.Handler
	unmatchedOnce sync.Once
}

// NewServeMux creates a mux that buffers without limit and logs to the standard logger.
func NewServeMux() *ServeMux {
	return NewServeMuxWith(-1, NewStdLogger(log.Default()), http.NewServeMux(), NewReverser())
}

// NewServeMuxWith creates a mux with a buffer limit per response, a logger for unhandled errors,
// the routing mux to register on and the reverser that keeps the route names.
func NewServeMuxWith(bufLimit int, logger Logger, baseMux *http.ServeMux, reverser *Reverser) *ServeMux {
	return &ServeMux{
		bufLimit: bufLimit,
		logs:     logger,
		reverser: reverser,
		mux:      baseMux,
	}
}

// Reverse builds the path of the route registered as 'name'.
func (m *ServeMux) Reverse(name string, vals ...string) (string, error) {
	return m.reverser.Reverse(name, vals...)
}

// Reverser returns the reverser that holds the named routes of this mux. Redirect gates use it
// through [RedirectToRoute] before the routes are registered.
func (m *ServeMux) Reverser() *Reverser { return m.reverser }

// Use adds interception middleware. It panics once a route was registered, since routes capture
// the middleware at registration.
func (m *ServeMux) Use(mw ...Middleware) {
	if m.sealed {
		panic("rintercept: cannot call Use() after calling Handle")
	}

	m.interceptors = append(m.interceptors, mw...)
}

// HandleFunc registers a handler function, optionally under a route name.
func (m *ServeMux) HandleFunc(pattern string, handler HandlerFunc, name ...string) {
	m.Handle(pattern, handler, name...)
}

// HandleStd registers a standard library [http.Handler]. Its response is buffered and
// intercepted like that of any other route.
func (m *ServeMux) HandleStd(pattern string, handler http.Handler, name ...string) {
	m.Handle(pattern, fromStdFunc(handler), name...)
}

// Handle registers a handler, optionally under a route name.
func (m *ServeMux) Handle(pattern string, handler Handler, name ...string) {
	m.sealed = true

	if len(name) > 0 {
		pattern = m.reverser.Named(name[0], pattern)
	}

	m.mux.Handle(pattern, m.buffered(handler))
}

// ServeHTTP dispatches to the matching route. Requests without one get the routing mux's reply,
// passed through the interceptors.
func (m *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := m.mux.Handler(r); pattern != "" {
		m.mux.ServeHTTP(w, r)
		return
	}

	m.unmatchedOnce.Do(func() {
		m.sealed = true
		m.unmatched = m.buffered(fromStdFunc(m.mux))
	})

	m.unmatched.ServeHTTP(w, r)
}

func (m *ServeMux) buffered(handler Handler) http.Handler {
	return ToStd(Wrap(handler, m.interceptors...), m.bufLimit, m.logs)
}

func fromStdFunc(h http.Handler) HandlerFunc {
	return func(_ context.Context, w ResponseWriter, r *http.Request) error {
		h.ServeHTTP(w, r)
		return nil
	}
}
