package rintercept_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/rintercept"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := rintercept.NewMetrics(reg)
	logs := rintercept.NewTestLogger(t)
	ic := rintercept.New(rintercept.WithMetrics(metrics), rintercept.WithPolicy(rintercept.Policy{
		Logging: rintercept.LoggingPolicy{Enabled: true, Sink: logs},
	}))

	var fail bool
	capture := rintercept.Must(ic.Intercept(func(_ context.Context, b rintercept.Body, _ string, _ *http.Request) (rintercept.Body, error) {
		if fail {
			return b, errors.New("boom")
		}

		return b, nil
	}))

	hdlr := writeString(http.StatusOK, "", `{}`)
	serveWith(t, logs, []rintercept.Middleware{capture}, hdlr, httptest.NewRequest(http.MethodGet, "/", nil))
	serveWith(t, logs, []rintercept.Middleware{capture}, hdlr, httptest.NewRequest(http.MethodGet, "/", nil))

	fail = true
	serveWith(t, logs, []rintercept.Middleware{capture}, hdlr, httptest.NewRequest(http.MethodGet, "/", nil))

	counter := metrics.Interceptions
	require.InDelta(t, 2, testutil.ToFloat64(counter.WithLabelValues("intercept", "rewritten")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(counter.WithLabelValues("intercept", "failed")), 0)
	require.Equal(t, 2, testutil.CollectAndCount(counter))
}

func TestFinalizeSpanEvents(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	ic, logs := newTestInterceptor(t)

	mw := rintercept.Must(ic.InterceptByStatusCodeRedirectTo(rintercept.Codes(http.StatusUnauthorized),
		rintercept.RedirectTo("/login")))

	ctx, span := tp.Tracer("test").Start(t.Context(), "request")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	serveWith(t, logs, []rintercept.Middleware{mw}, writeString(http.StatusUnauthorized, "", ""), req)
	span.End()

	ended := rec.Ended()
	require.Len(t, ended, 1)

	events := ended[0].Events()
	require.Len(t, events, 1)
	require.Equal(t, "rintercept.finalize", events[0].Name)
	require.Contains(t, events[0].Attributes, attribute.String("rintercept.result", "redirected"))
	require.Contains(t, events[0].Attributes, attribute.String("rintercept.stage", "status_code_redirect"))
}
