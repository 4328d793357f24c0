package rintercept

import (
	"context"
	"net/http"
	"strconv"
)

// InterceptFunc rewrites the body of a response before it is sent. It receives the classified
// body and its effective content type, and returns the body to send instead.
type InterceptFunc func(ctx context.Context, body Body, contentType string, r *http.Request) (Body, error)

// Intercept returns middleware that hands every response body to 'fn' before it is sent. The
// rewritten body gets an entity tag, and a 304 without body is sent when the request's
// If-None-Match matches it.
func (ic *Interceptor) Intercept(fn InterceptFunc) (Middleware, error) {
	if fn == nil {
		return nil, invalidCallback(StageIntercept)
	}

	return func(next BareHandler) BareHandler {
		return BareHandlerFunc(func(w ResponseWriter, r *http.Request) error {
			rc := newResponseContext(w, r, ic.capture(StageIntercept, fn))
			if err := next.ServeBareBHTTP(rc, r); err != nil {
				return err
			}

			return rc.finalize()
		})
	}, nil
}

// InterceptOnFly intercepts the single response written to the returned writer, without
// registering middleware. The response is finalized when 'w' is flushed.
func (ic *Interceptor) InterceptOnFly(w ResponseWriter, r *http.Request, fn InterceptFunc) (ResponseWriter, error) {
	if fn == nil {
		return nil, invalidCallback(StageInterceptOnFly)
	}

	if w == nil || r == nil {
		return nil, invalidArgument(StageInterceptOnFly, "response writer and request are required")
	}

	rc := newResponseContext(w, r, ic.capture(StageInterceptOnFly, fn))
	w.BeforeFlush(rc.finalize)

	return rc, nil
}

func (ic *Interceptor) capture(stage Stage, fn InterceptFunc) func(rc *ResponseContext) error {
	return func(rc *ResponseContext) error {
		status := rc.Status()
		if !bodyAllowed(status) {
			rc.state = statePassThrough
			ic.observe(rc.r.Context(), stage, ResultPassThrough)

			return rc.commitOriginal()
		}

		rc.state = stateHandled
		body, label := Classify(rc.Captured(), rc.Header().Get("Content-Type"))

		out, err := invoke(func() (Body, error) { return fn(rc.r.Context(), body, label, rc.r) })

		var data []byte
		if err == nil {
			data, err = out.Bytes()
		}

		if err != nil {
			return ic.fail(rc, stage, err)
		}

		hdr := rc.Header()

		// a flushed response continues after this chunk, so its length and tag are unknown
		if rc.streaming {
			hdr.Del("Content-Length")
			hdr.Del("ETag")
			setDetectedType(hdr, out)
			ic.observe(rc.r.Context(), stage, ResultRewritten)

			return rc.commit(status, data)
		}

		tag := Fingerprint(data)
		hdr.Set("ETag", tag)

		if MatchesNoneMatch(rc.r.Header.Get("If-None-Match"), tag) {
			hdr.Del("Content-Length")
			ic.observe(rc.r.Context(), stage, ResultNotModified)

			return rc.commit(http.StatusNotModified, nil)
		}

		hdr.Set("Content-Length", strconv.Itoa(len(data)))
		setDetectedType(hdr, out)
		ic.observe(rc.r.Context(), stage, ResultRewritten)

		return rc.commit(status, data)
	}
}

// setDetectedType labels 'out' unless the handler declared a content type.
func setDetectedType(hdr http.Header, out Body) {
	if hdr.Get("Content-Type") == "" {
		hdr.Set("Content-Type", DetectContentType(out))
	}
}
