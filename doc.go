// Package rintercept intercepts HTTP responses right before they are sent, so their body, status
// and headers can be rewritten by a callback.
//
// # Overview
//
// Handlers write to a buffered [ResponseWriter]. Nothing reaches the client until the response is
// flushed, which gives interception middleware the chance to look at the complete response and
// replace it. A minimal example:
//
//	mux := rintercept.NewServeMux()
//	mux.Use(rintercept.Must(rintercept.Intercept(func(
//	    ctx context.Context, body rintercept.Body, contentType string, r *http.Request,
//	) (rintercept.Body, error) {
//	    return body.Set("intercepted", true)
//	})))
//	mux.HandleFunc("GET /hello", func(ctx context.Context, w rintercept.ResponseWriter, r *http.Request) error {
//	    return json.NewEncoder(w).Encode(map[string]string{"message": "Hello World"})
//	})
//
// A request to /hello now receives {"message":"Hello World","intercepted":true}.
//
// # Interception Modes
//
// There are four ways to intercept a response:
//
//   - [Intercept] hands every response body to a callback that returns the body to send
//   - [InterceptOnFly] does the same for a single response, from within a handler
//   - [InterceptByStatusCode] lets a callback decide on responses with certain status codes
//   - [InterceptByStatusCodeRedirectTo] redirects responses with certain status codes
//
// Each mode is available as a method on an [Interceptor] and as a package-level function that
// uses the [Default] interceptor.
//
// # Bodies
//
// Callbacks receive the response as a [Body]. The declared Content-Type decides how the bytes are
// classified (see [Classify]): JSON is parsed, with a fallback to text labelled as HTML when the
// bytes are not valid JSON. Responses that declare no Content-Type are assumed to be JSON.
//
//	name := body.Get("user.name").String()
//	body, err := body.Set("user.seen", true)
//
// Content produced by a callback without an explicit content type is labelled by
// [DetectContentType].
//
// # Conditional Responses
//
// Responses rewritten by [Intercept] and [InterceptOnFly] carry an ETag computed over the bytes
// that are sent. When the request's If-None-Match header matches, a 304 Not Modified without a
// body is sent instead. Responses that already have status 304 are never handed to the callback.
//
// # Status Gates
//
// A [StatusFunc] returns an [Outcome]:
//
//	mw, err := ic.InterceptByStatusCode(rintercept.Codes(404), func(ctx context.Context, r *http.Request) (rintercept.Outcome, error) {
//	    return rintercept.Respond(404, map[string]string{"error": "Not Found"}), nil
//	})
//
// Status codes can also be given as interval expressions with [ParseStatusCodes], for example
// "500-504,599".
//
// # Failing Callbacks
//
// A callback that returns an error or panics never breaks the response by default. The failure is
// logged, passed to the configured [ErrorHandler] and the original response is sent unchanged. With
// [WithRethrow] the failure is returned to the host pipeline instead, which logs it and renders a
// 500 Internal Server Error. See [Policy] and [Interceptor.Configure].
//
// # Standard Library Handlers
//
// [ServeMux.HandleStd] and [Std] make it possible to intercept responses of plain [http.Handler]
// implementations.
package rintercept
