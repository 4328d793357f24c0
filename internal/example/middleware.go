// Package example implements interception middleware in an outside package.
package example

import (
	"context"
	"net/http"

	"github.com/advdv/rintercept"
	"go.uber.org/zap"
)

// ctxKey type scopes middlware values.
type ctxKey string

// RequestID tags every request with an id from 'nextID'. The id is sent as the X-Request-Id
// header, added to JSON response bodies and attached to a request scoped logger.
func RequestID(ic *rintercept.Interceptor, logs *zap.Logger, nextID func() string) (rintercept.Middleware, error) {
	stamp, err := ic.Intercept(func(ctx context.Context, body rintercept.Body, _ string, _ *http.Request) (rintercept.Body, error) {
		if body.Kind() != rintercept.KindJSON || !body.Get("@this").IsObject() {
			return body, nil
		}

		return body.Set("request_id", ID(ctx))
	})
	if err != nil {
		return nil, err
	}

	return func(next rintercept.BareHandler) rintercept.BareHandler {
		stamped := stamp(next)

		return rintercept.BareHandlerFunc(func(w rintercept.ResponseWriter, r *http.Request) error {
			id := nextID()

			ctx := context.WithValue(r.Context(), ctxKey("id"), id)
			ctx = context.WithValue(ctx, ctxKey("zap"), logs.With(zap.String("request_id", id)))

			w.Header().Set("X-Request-Id", id)

			return stamped.ServeBareBHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// ID returns the request id.
func ID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey("id")).(string)

	return v
}

// Log returns the request scoped logger.
func Log(ctx context.Context) *zap.Logger {
	v, ok := ctx.Value(ctxKey("zap")).(*zap.Logger)
	if !ok {
		return zap.NewNop()
	}

	return v
}
