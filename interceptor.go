package rintercept

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Stage names the kind of interception that finalized a response.
type Stage string

const (
	StageIntercept          Stage = "intercept"
	StageInterceptOnFly     Stage = "intercept_on_fly"
	StageStatusCode         Stage = "status_code"
	StageStatusCodeRedirect Stage = "status_code_redirect"
)

// Interceptor creates interception middleware that shares one policy. The policy can be changed
// at any time with [Interceptor.Configure], responses that are being finalized use the policy
// that was current when their callback failed.
type Interceptor struct {
	mu      sync.Mutex
	policy  atomic.Pointer[Policy]
	metrics *Metrics
}

// Option configures an interceptor at construction.
type Option func(*Interceptor)

// WithPolicy sets the initial policy.
func WithPolicy(p Policy) Option {
	return func(ic *Interceptor) { ic.policy.Store(&p) }
}

// WithMetrics records every finalized response in 'm'.
func WithMetrics(m *Metrics) Option {
	return func(ic *Interceptor) { ic.metrics = m }
}

// New inits an interceptor, by default with [DefaultPolicy].
func New(opts ...Option) *Interceptor {
	ic, pol := &Interceptor{}, DefaultPolicy()
	ic.policy.Store(&pol)

	for _, o := range opts {
		o(ic)
	}

	return ic
}

// Configure changes the policy with the given options and returns the resulting policy.
func (ic *Interceptor) Configure(opts ...PolicyOption) Policy {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	next := *ic.policy.Load()
	for _, o := range opts {
		if o != nil {
			o(&next)
		}
	}

	ic.policy.Store(&next)

	return next
}

// Config returns a snapshot of the current policy.
func (ic *Interceptor) Config() Policy {
	return *ic.policy.Load()
}

// invoke runs a user callback, turning panics into errors.
func invoke[T any](fn func() (T, error)) (res T, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = recovered(v)
		}
	}()

	return fn()
}

// fail applies the error policy to a failed callback. It returns a non-nil error only when the
// policy rethrows, otherwise the original response is sent.
func (ic *Interceptor) fail(rc *ResponseContext, stage Stage, cause error) error {
	cerr := newCallbackError(stage, rc.r, cause)
	pol := ic.Config()

	if logs := pol.logger(); logs != nil {
		logs.LogCallbackFailure(cerr)
	}

	if pol.ErrorHandling.OnError != nil {
		pol.ErrorHandling.OnError(cerr, rc.r, OriginalResponse{
			Status: rc.Status(),
			Header: rc.Header().Clone(),
		})
	}

	ic.observe(rc.r.Context(), stage, ResultFailed)

	if pol.ErrorHandling.Rethrow {
		return cerr
	}

	return rc.commitOriginal()
}

func (ic *Interceptor) observe(ctx context.Context, stage Stage, res Result) {
	ic.metrics.observe(stage, res)

	trace.SpanFromContext(ctx).AddEvent("rintercept.finalize", trace.WithAttributes(
		attribute.String("rintercept.stage", string(stage)),
		attribute.String("rintercept.result", string(res)),
	))
}

func (ic *Interceptor) warnEmptyContent(r *http.Request, status int) {
	if logs := ic.Config().logger(); logs != nil {
		logs.LogEmptyContent(r, status)
	}
}

func (ic *Interceptor) warnInvalidRedirect(r *http.Request, target string) {
	if logs := ic.Config().logger(); logs != nil {
		logs.LogInvalidRedirect(r, target)
	}
}

var defaultInterceptor = sync.OnceValue(func() *Interceptor {
	pol, err := PolicyFromEnv()
	if err != nil {
		pol = DefaultPolicy()
	}

	return New(WithPolicy(pol))
})

// Default returns the process-wide interceptor used by the package-level functions. Its initial
// policy is read from the environment.
func Default() *Interceptor { return defaultInterceptor() }

// Configure changes the policy of the [Default] interceptor.
func Configure(opts ...PolicyOption) Policy { return Default().Configure(opts...) }

// Config returns the policy of the [Default] interceptor.
func Config() Policy { return Default().Config() }

// Intercept creates capture middleware on the [Default] interceptor.
func Intercept(fn InterceptFunc) (Middleware, error) { return Default().Intercept(fn) }

// InterceptOnFly intercepts a single response with the [Default] interceptor.
func InterceptOnFly(w ResponseWriter, r *http.Request, fn InterceptFunc) (ResponseWriter, error) {
	return Default().InterceptOnFly(w, r, fn)
}

// InterceptByStatusCode creates status gating middleware on the [Default] interceptor.
func InterceptByStatusCode(codes StatusCodeSet, fn StatusFunc) (Middleware, error) {
	return Default().InterceptByStatusCode(codes, fn)
}

// InterceptByStatusCodeRedirectTo creates redirect gating middleware on the [Default] interceptor.
func InterceptByStatusCodeRedirectTo(codes StatusCodeSet, target RedirectTarget) (Middleware, error) {
	return Default().InterceptByStatusCodeRedirectTo(codes, target)
}

// Must panics if registering interception middleware failed.
func Must(mw Middleware, err error) Middleware {
	if err != nil {
		panic("rintercept: " + err.Error())
	}

	return mw
}
