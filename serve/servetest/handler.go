package servetest

import (
	"net/http"
	"net/http/httptest"

	"github.com/advdv/rintercept"
)

// CallHandler invokes a [rintercept.HandlerFunc] with a buffered response writer and
// returns the recorded response. Middleware, such as interceptors, wraps the handler
// in the order given.
func CallHandler(handler rintercept.HandlerFunc, req *http.Request, m ...rintercept.Middleware) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	w := rintercept.NewResponseWriter(rec, -1)

	bare := rintercept.Wrap(handler, m...)
	if err := bare.ServeBareBHTTP(w, req); err != nil {
		panic("servetest: handler returned error: " + err.Error())
	}

	if err := w.FlushBuffer(); err != nil {
		panic("servetest: FlushBuffer failed: " + err.Error())
	}

	return rec
}
