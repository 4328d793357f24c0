package logsink_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/rintercept"
	"github.com/advdv/rintercept/logsink"
	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr/funcr"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// serveFailing sends one request through a failing interception callback and one through an empty
// redirect target, both logged to 'sink'.
func serveFailing(t *testing.T, sink rintercept.Logger) {
	t.Helper()

	ic := rintercept.New(rintercept.WithPolicy(rintercept.Policy{
		Logging: rintercept.LoggingPolicy{Enabled: true, Sink: sink},
	}))

	mux := rintercept.NewServeMuxWith(-1, sink, http.NewServeMux(), rintercept.NewReverser())
	mux.Use(
		rintercept.Must(ic.Intercept(func(context.Context, rintercept.Body, string, *http.Request) (rintercept.Body, error) {
			return rintercept.Body{}, errors.New("boom")
		})),
		rintercept.Must(ic.InterceptByStatusCodeRedirectTo(rintercept.Codes(http.StatusUnauthorized),
			rintercept.RedirectFunc(func(*http.Request) (string, error) { return "", nil }))),
	)
	mux.HandleFunc("GET /fail", func(_ context.Context, w rintercept.ResponseWriter, _ *http.Request) error {
		w.WriteHeader(http.StatusUnauthorized)
		return nil
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestZap(t *testing.T) {
	core, logged := observer.New(zap.InfoLevel)
	serveFailing(t, logsink.Zap(zap.New(core)))

	entries := logged.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "invalid redirect target, sending the original response", entries[0].Message)
	assert.Equal(t, "rintercept", entries[0].LoggerName)

	assert.Equal(t, "interception callback failed", entries[1].Message)
	fields := entries[1].ContextMap()
	assert.Equal(t, "intercept", fields["stage"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/fail", fields["path"])
	assert.Equal(t, "boom", fields["error"])
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	serveFailing(t, logsink.Zerolog(zerolog.New(&buf)))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	assert.Equal(t, "warn", gjson.GetBytes(lines[0], "level").String())
	assert.Equal(t, "/fail", gjson.GetBytes(lines[0], "path").String())

	assert.Equal(t, "error", gjson.GetBytes(lines[1], "level").String())
	assert.Equal(t, "intercept", gjson.GetBytes(lines[1], "stage").String())
	assert.Equal(t, "boom", gjson.GetBytes(lines[1], "error").String())
	assert.Equal(t, "rintercept", gjson.GetBytes(lines[1], "component").String())
}

func TestLogrus(t *testing.T) {
	logs, hook := logrustest.NewNullLogger()
	serveFailing(t, logsink.Logrus(logs))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, logrus.ErrorLevel, entries[1].Level)
	assert.Equal(t, "interception callback failed", entries[1].Message)
	assert.Equal(t, "intercept", entries[1].Data["stage"])
	assert.EqualError(t, entries[1].Data[logrus.ErrorKey].(error), "boom")
}

func TestLogr(t *testing.T) {
	var objs []string
	serveFailing(t, logsink.Logr(funcr.NewJSON(func(obj string) { objs = append(objs, obj) }, funcr.Options{})))

	require.Len(t, objs, 2)
	assert.Equal(t, "rintercept", gjson.Get(objs[0], "logger").String())
	assert.Equal(t, "", gjson.Get(objs[1], "target").String())
	assert.Equal(t, "interception callback failed", gjson.Get(objs[1], "msg").String())
	assert.Equal(t, "boom", gjson.Get(objs[1], "error").String())
	assert.Equal(t, "GET", gjson.Get(objs[1], "method").String())
}
