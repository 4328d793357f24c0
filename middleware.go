package rintercept

// Middleware wraps a buffered handler. Interceptors are middleware: each one finalizes the
// response of the handlers it wraps before the middleware outside of it sees that response.
type Middleware func(BareHandler) BareHandler

// Wrap wraps 'h' with middleware. The first middleware is the outermost: it runs first on the
// request and is the last to intercept the response.
func Wrap(h Handler, m ...Middleware) BareHandler {
	return Chain(ToBare(h), m...)
}

// Chain wraps a bare handler with middleware, in the same order as [Wrap].
func Chain(inner BareHandler, m ...Middleware) BareHandler {
	for i := len(m) - 1; i >= 0; i-- {
		inner = m[i](inner)
	}

	return inner
}
