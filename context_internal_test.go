package rintercept

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, decide func(rc *ResponseContext) error) (*ResponseContext, *ResponseBuffer, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	buf := newBufferResponse(rec, -1)
	t.Cleanup(buf.Free)

	return newResponseContext(buf, httptest.NewRequest(http.MethodGet, "/", nil), decide), buf, rec
}

func TestResponseContextFinalizesOnce(t *testing.T) {
	var calls int
	rc, buf, rec := newTestContext(t, func(rc *ResponseContext) error {
		calls++
		rc.state = stateHandled

		return rc.commit(http.StatusCreated, []byte("final"))
	})

	rc.WriteHeader(http.StatusAccepted)
	fmt.Fprint(rc, "captured")

	require.Equal(t, http.StatusAccepted, rc.Status())
	require.Equal(t, "captured", string(rc.Captured()))

	require.NoError(t, rc.finalize())
	require.NoError(t, rc.finalize())
	require.NoError(t, rc.FlushBuffer())
	require.True(t, rc.Finalized())
	assert.Equal(t, 1, calls)

	fmt.Fprint(rc, ";after")
	require.NoError(t, buf.FlushBuffer())

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "final;after", rec.Body.String())
}

func TestResponseContextCommitTwice(t *testing.T) {
	rc, _, _ := newTestContext(t, func(rc *ResponseContext) error { return rc.commitOriginal() })

	require.NoError(t, rc.commit(http.StatusOK, nil))
	require.Error(t, rc.commit(http.StatusOK, nil))
}

func TestResponseContextReset(t *testing.T) {
	rc, _, rec := newTestContext(t, func(rc *ResponseContext) error { return rc.commitOriginal() })

	rc.Header().Set("X-Old", "1")
	rc.WriteHeader(http.StatusTeapot)
	fmt.Fprint(rc, "old")

	var hooked bool
	rc.BeforeFlush(func() error { hooked = true; return nil })
	rc.Reset()

	require.Equal(t, http.StatusOK, rc.Status())
	require.Empty(t, rc.Captured())

	fmt.Fprint(rc, "new")
	require.NoError(t, rc.FlushBuffer())

	assert.False(t, hooked)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "new", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Old"))
}

func TestResponseContextReentrantFinalize(t *testing.T) {
	var calls int
	rc, _, rec := newTestContext(t, nil)
	rc.decide = func(rc *ResponseContext) error {
		calls++
		rc.state = stateHandled
		require.NoError(t, rc.finalize()) // no-op while being finalized

		return rc.commit(http.StatusOK, []byte("once"))
	}

	require.NoError(t, rc.FlushBuffer())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "once", rec.Body.String())
}

func TestResponseContextFlushController(t *testing.T) {
	rc, _, rec := newTestContext(t, func(rc *ResponseContext) error { return rc.commitOriginal() })
	fmt.Fprint(rc, "streamed")

	require.NoError(t, http.NewResponseController(rc).Flush())
	assert.True(t, rec.Flushed)
	assert.Equal(t, "streamed", rec.Body.String())
	assert.Same(t, rc.w, rc.Unwrap())
}
