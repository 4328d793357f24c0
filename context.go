package rintercept

import (
	"bytes"
	"net/http"

	"github.com/cockroachdb/errors"
)

type contextState int

const (
	stateOpen contextState = iota
	stateHandled
	statePassThrough
	stateFinalized
)

// ResponseContext captures a single response for interception. It buffers what the handler writes
// and commits a response to the wrapped writer exactly once, when it is finalized. Writes after
// finalization go straight to the wrapped writer.
type ResponseContext struct {
	w      ResponseWriter
	r      *http.Request
	buf    bytes.Buffer
	status int
	state  contextState
	hooks  []func() error
	decide func(rc *ResponseContext) error

	// streaming is set when the handler flushed before the end of the pipeline, more body
	// may follow the finalized part.
	streaming bool
}

func newResponseContext(w ResponseWriter, r *http.Request, decide func(rc *ResponseContext) error) *ResponseContext {
	return &ResponseContext{w: w, r: r, decide: decide}
}

// Header returns the header map of the wrapped writer.
func (rc *ResponseContext) Header() http.Header { return rc.w.Header() }

// Write captures 'p' until the response is finalized.
func (rc *ResponseContext) Write(p []byte) (int, error) {
	if rc.state == stateFinalized {
		return rc.w.Write(p)
	}

	return rc.buf.Write(p)
}

// WriteHeader records the status code. Only the first call has an effect.
func (rc *ResponseContext) WriteHeader(statusCode int) {
	if rc.state == stateFinalized {
		rc.w.WriteHeader(statusCode)
		return
	}

	if rc.status == 0 {
		rc.status = statusCode
	}
}

// Status returns the status code written so far, defaulting to 200.
func (rc *ResponseContext) Status() int {
	if rc.status == 0 {
		return http.StatusOK
	}

	return rc.status
}

// Captured returns the bytes written so far and not yet committed.
func (rc *ResponseContext) Captured() []byte { return rc.buf.Bytes() }

// Finalized reports whether the response was committed to the wrapped writer.
func (rc *ResponseContext) Finalized() bool { return rc.state == stateFinalized }

// BeforeFlush registers fn to run right before the response is finalized.
func (rc *ResponseContext) BeforeFlush(fn func() error) {
	rc.hooks = append(rc.hooks, fn)
}

// Reset discards the captured response and returns the context to its initial state, so it
// can capture a new response.
func (rc *ResponseContext) Reset() {
	rc.buf.Reset()
	rc.status = 0
	rc.state = stateOpen
	rc.streaming = false
	rc.hooks = nil
	rc.w.Reset()
}

// Free releases the captured bytes.
func (rc *ResponseContext) Free() {
	rc.buf = bytes.Buffer{}
}

// FlushBuffer finalizes the response and flushes the wrapped writer.
func (rc *ResponseContext) FlushBuffer() error {
	if err := rc.finalize(); err != nil {
		return err
	}

	return rc.w.FlushBuffer()
}

// FlushError finalizes the response and flushes it to the client, for [http.ResponseController].
func (rc *ResponseContext) FlushError() error {
	if rc.state == stateOpen {
		rc.streaming = true
	}

	if err := rc.finalize(); err != nil {
		return err
	}

	if err := http.NewResponseController(rc.w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return errors.Wrap(err, "flush")
	}

	return nil
}

// Flush implements [http.Flusher].
func (rc *ResponseContext) Flush() { _ = rc.FlushError() }

// Unwrap returns the wrapped writer.
func (rc *ResponseContext) Unwrap() http.ResponseWriter { return rc.w }

// finalize decides on and commits the response. It does nothing when the response was already
// finalized or is being finalized.
func (rc *ResponseContext) finalize() error {
	if rc.state != stateOpen {
		return nil
	}

	hooks := rc.hooks
	rc.hooks = nil

	for _, fn := range hooks {
		if err := fn(); err != nil {
			return err
		}
	}

	return rc.decide(rc)
}

// commit writes the status and body to the wrapped writer. Afterwards writes pass through.
func (rc *ResponseContext) commit(status int, body []byte) error {
	if rc.state == stateFinalized {
		return errors.New("response already finalized")
	}

	rc.state = stateFinalized
	rc.buf.Reset()
	rc.w.WriteHeader(status)

	if len(body) == 0 {
		return nil
	}

	if _, err := rc.w.Write(body); err != nil {
		return errors.Wrap(err, "write finalized body")
	}

	return nil
}

// commitOriginal sends the captured response unchanged.
func (rc *ResponseContext) commitOriginal() error {
	return rc.commit(rc.Status(), bytes.Clone(rc.buf.Bytes()))
}

var _ ResponseWriter = &ResponseContext{}

// bodyAllowed reports whether a response with 'status' may carry a body.
func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	default:
		return true
	}
}
