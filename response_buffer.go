package rintercept

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrBufferFull is returned when the write limit of the buffered response is reached.
var ErrBufferFull = errors.New("buffer is full")

var bufferPool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// ResponseBuffer is a buffered [http.ResponseWriter]. Headers, status and body are only
// committed to the underlying writer on (implicit) flush.
type ResponseBuffer struct {
	resp    http.ResponseWriter
	header  http.Header
	buf     *bytes.Buffer
	limit   int
	status  int
	flushed bool
	hooks   []func() error
}

// NewResponseWriter inits a buffered response writer. A negative limit disables the write limit.
func NewResponseWriter(resp http.ResponseWriter, limit int) ResponseWriter {
	return newBufferResponse(resp, limit)
}

func newBufferResponse(resp http.ResponseWriter, limit int) *ResponseBuffer {
	buf, _ := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{
		resp:   resp,
		header: http.Header{},
		buf:    buf,
		limit:  limit,
	}
}

// Header returns the buffered headers.
func (w *ResponseBuffer) Header() http.Header { return w.header }

// Write buffers 'p'. It fails with [ErrBufferFull] when the write would exceed the limit.
func (w *ResponseBuffer) Write(p []byte) (int, error) {
	if w.limit >= 0 && w.buf.Len()+len(p) > w.limit {
		return 0, ErrBufferFull
	}

	return w.buf.Write(p)
}

// WriteHeader records the status code. Only the first call has an effect.
func (w *ResponseBuffer) WriteHeader(statusCode int) {
	if w.status != 0 {
		return
	}

	w.status = statusCode
}

// BeforeFlush registers fn to run once, right before the buffered response is first
// committed to the underlying writer.
func (w *ResponseBuffer) BeforeFlush(fn func() error) {
	w.hooks = append(w.hooks, fn)
}

// Reset clears the buffered body, headers, status and flush hooks. It panics if the
// response was already flushed explicitly.
func (w *ResponseBuffer) Reset() {
	if w.flushed {
		panic("rintercept: cannot reset, response already flushed")
	}

	w.buf.Reset()
	w.header = http.Header{}
	w.status = 0
	w.hooks = nil
}

// Free returns the underlying buffer to the pool. The writer must not be used afterwards.
func (w *ResponseBuffer) Free() {
	if w.buf == nil {
		return
	}

	bufferPool.Put(w.buf)
	w.buf = nil
}

// Unwrap returns the underlying writer so [http.ResponseController] can reach it.
func (w *ResponseBuffer) Unwrap() http.ResponseWriter { return w.resp }

// Flush implements [http.Flusher].
func (w *ResponseBuffer) Flush() { _ = w.FlushError() }

// FlushError flushes explicitly: the buffer is committed and the underlying writer is flushed.
func (w *ResponseBuffer) FlushError() error {
	if err := w.FlushBuffer(); err != nil {
		return err
	}

	if err := http.NewResponseController(w.resp).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return errors.Wrap(err, "flush underlying")
	}

	return nil
}

// FlushBuffer commits the buffered status, headers and body to the underlying writer.
func (w *ResponseBuffer) FlushBuffer() error {
	if err := w.runHooks(); err != nil {
		return err
	}

	if !w.flushed {
		dst := w.resp.Header()
		for k, v := range w.header {
			dst[k] = v
		}

		w.resp.WriteHeader(w.statusOrOK())
		w.flushed = true
	}

	if w.buf.Len() < 1 {
		return nil
	}

	if _, err := w.resp.Write(w.buf.Bytes()); err != nil {
		return errors.Wrap(err, "write buffered body")
	}

	w.buf.Reset()

	return nil
}

func (w *ResponseBuffer) runHooks() error {
	hooks := w.hooks
	w.hooks = nil

	for _, fn := range hooks {
		if err := fn(); err != nil {
			return err
		}
	}

	return nil
}

func (w *ResponseBuffer) statusOrOK() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}
