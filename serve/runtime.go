package serve

import (
	"net/http"

	"github.com/advdv/rintercept"
	"github.com/carlmjohnson/requests"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into routing and handler constructors via fx instead of pulling from context.
//
// Example:
//
//	func routing(rt *serve.Runtime[Env], m *serve.Mux) {
//	    m.Use(rintercept.Must(rt.Interceptor().InterceptByStatusCodeRedirectTo(
//	        rintercept.Codes(http.StatusForbidden),
//	        rintercept.RedirectToRoute(m.Reverser(), "login"))))
//	    m.HandleFunc("GET /login", login, "login")
//	}
type Runtime[E Environment] struct {
	env         E
	mux         *Mux
	interceptor *rintercept.Interceptor
	transport   http.RoundTripper
}

// NewRuntime creates a new Runtime with the given dependencies. A nil transport falls
// back to [http.DefaultTransport].
func NewRuntime[E Environment](env E, mux *Mux, ic *rintercept.Interceptor, transport http.RoundTripper) *Runtime[E] {
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Runtime[E]{
		env:         env,
		mux:         mux,
		interceptor: ic,
		transport:   transport,
	}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the URL for a named route with the given parameters.
// The route must have been registered with a name using Handle/HandleFunc.
func (r *Runtime[E]) Reverse(name string, params ...string) (string, error) {
	return r.mux.Reverse(name, params...)
}

// Interceptor returns the app's interceptor.
func (r *Runtime[E]) Interceptor() *rintercept.Interceptor {
	return r.interceptor
}

// NewRequest starts an outbound request that continues the trace of the incoming one.
// Pass the request context to Fetch so the span is linked.
func (r *Runtime[E]) NewRequest() *requests.Builder {
	return newRequestBuilder(r.transport)
}
