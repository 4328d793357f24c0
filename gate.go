package rintercept

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Outcome is what a [StatusFunc] decides for a gated response: [Rewrite], [Redirect] or [PassThrough].
type Outcome interface{ outcome() }

// Rewrite replaces the gated response. A zero Status keeps the original status and an empty
// ContentType is detected from the content.
type Rewrite struct {
	Status      int
	Content     Body
	ContentType string
}

// Redirect redirects the client to Target. A Status outside the 3xx range becomes 302.
type Redirect struct {
	Target string
	Status int
}

// PassThrough sends the gated response unchanged.
type PassThrough struct{}

func (Rewrite) outcome()     {}
func (Redirect) outcome()    {}
func (PassThrough) outcome() {}

// Respond is shorthand for a [Rewrite] whose content is built with [Content].
func Respond(status int, content any, contentType ...string) Rewrite {
	rw := Rewrite{Status: status, Content: Content(content)}
	if len(contentType) > 0 {
		rw.ContentType = contentType[0]
	}

	return rw
}

// StatusFunc decides what happens to a response whose status is in the gated set.
type StatusFunc func(ctx context.Context, r *http.Request) (Outcome, error)

// RedirectTarget says where a redirect gate sends the client. Use [RedirectTo], [RedirectFunc]
// or [RedirectToRoute] to create one.
type RedirectTarget struct {
	path string
	fn   func(r *http.Request) (string, error)
	err  error
}

// RedirectTo redirects to a fixed path.
func RedirectTo(path string) RedirectTarget {
	if strings.TrimSpace(path) == "" {
		return RedirectTarget{err: errors.New("redirect path must not be empty")}
	}

	return RedirectTarget{path: path}
}

// RedirectFunc computes the redirect path per request. Returning an empty path sends the
// original response instead.
func RedirectFunc(fn func(r *http.Request) (string, error)) RedirectTarget {
	if fn == nil {
		return RedirectTarget{err: errors.New("redirect function must not be nil")}
	}

	return RedirectTarget{fn: fn}
}

// RedirectToRoute redirects to a named route of 'rev'.
func RedirectToRoute(rev *Reverser, name string, vals ...string) RedirectTarget {
	if rev == nil || name == "" {
		return RedirectTarget{err: errors.New("redirect route needs a reverser and a route name")}
	}

	return RedirectFunc(func(*http.Request) (string, error) {
		return rev.Reverse(name, vals...)
	})
}

func (t RedirectTarget) validate(stage Stage) error {
	switch {
	case t.err != nil:
		return invalidArgument(stage, "%s", t.err)
	case t.fn == nil && t.path == "":
		return invalidArgument(stage, "redirect target must be a path or a function")
	default:
		return nil
	}
}

// InterceptByStatusCode returns middleware that lets 'fn' decide on every response whose status
// is in 'codes'. Other responses pass through unchanged.
func (ic *Interceptor) InterceptByStatusCode(codes StatusCodeSet, fn StatusFunc) (Middleware, error) {
	if fn == nil {
		return nil, invalidCallback(StageStatusCode)
	}

	if err := codes.validate(StageStatusCode); err != nil {
		return nil, err
	}

	return ic.gate(StageStatusCode, codes, fn), nil
}

// InterceptByStatusCodeRedirectTo returns middleware that redirects every response whose status
// is in 'codes' to 'target'.
func (ic *Interceptor) InterceptByStatusCodeRedirectTo(codes StatusCodeSet, target RedirectTarget) (Middleware, error) {
	if err := codes.validate(StageStatusCodeRedirect); err != nil {
		return nil, err
	}

	if err := target.validate(StageStatusCodeRedirect); err != nil {
		return nil, err
	}

	return ic.gate(StageStatusCodeRedirect, codes, func(_ context.Context, r *http.Request) (Outcome, error) {
		if target.fn == nil {
			return Redirect{Target: target.path}, nil
		}

		path, err := target.fn(r)
		if err != nil {
			return nil, err
		}

		return Redirect{Target: path}, nil
	}), nil
}

func (ic *Interceptor) gate(stage Stage, codes StatusCodeSet, fn StatusFunc) Middleware {
	decide := func(rc *ResponseContext) error {
		if !codes.Contains(rc.Status()) {
			rc.state = statePassThrough
			return rc.commitOriginal()
		}

		rc.state = stateHandled

		out, err := invoke(func() (Outcome, error) { return fn(rc.r.Context(), rc.r) })
		if err != nil {
			return ic.fail(rc, stage, err)
		}

		return ic.apply(rc, stage, out)
	}

	return func(next BareHandler) BareHandler {
		return BareHandlerFunc(func(w ResponseWriter, r *http.Request) error {
			rc := newResponseContext(w, r, decide)
			if err := next.ServeBareBHTTP(rc, r); err != nil {
				return err
			}

			return rc.finalize()
		})
	}
}

func (ic *Interceptor) apply(rc *ResponseContext, stage Stage, out Outcome) error {
	ctx := rc.r.Context()

	switch out := out.(type) {
	case Rewrite:
		return ic.rewrite(rc, stage, out)
	case *Rewrite:
		if out != nil {
			return ic.rewrite(rc, stage, *out)
		}
	case Redirect:
		return ic.redirect(rc, stage, out)
	case *Redirect:
		if out != nil {
			return ic.redirect(rc, stage, *out)
		}
	}

	ic.observe(ctx, stage, ResultPassThrough)

	return rc.commitOriginal()
}

func (ic *Interceptor) rewrite(rc *ResponseContext, stage Stage, rw Rewrite) error {
	status := rw.Status
	if status == 0 {
		status = rc.Status()
	}

	hdr := rc.Header()
	hdr.Del("ETag")

	if !bodyAllowed(status) {
		hdr.Del("Content-Type")
		hdr.Del("Content-Length")
		ic.observe(rc.r.Context(), stage, ResultRewritten)

		return rc.commit(status, nil)
	}

	content := rw.Content
	if content.IsZero() {
		ic.warnEmptyContent(rc.r, status)
		content = Text("")
	}

	data, err := content.Bytes()
	if err != nil {
		return ic.fail(rc, stage, err)
	}

	contentType := rw.ContentType
	if contentType == "" {
		contentType = DetectContentType(content)
	}

	hdr.Set("Content-Type", contentType)
	if rc.streaming {
		hdr.Del("Content-Length")
	} else {
		hdr.Set("Content-Length", strconv.Itoa(len(data)))
	}

	ic.observe(rc.r.Context(), stage, ResultRewritten)

	return rc.commit(status, data)
}

func (ic *Interceptor) redirect(rc *ResponseContext, stage Stage, rd Redirect) error {
	if strings.TrimSpace(rd.Target) == "" {
		ic.warnInvalidRedirect(rc.r, rd.Target)
		ic.observe(rc.r.Context(), stage, ResultPassThrough)

		return rc.commitOriginal()
	}

	status := rd.Status
	if status < 300 || status > 399 {
		status = http.StatusFound
	}

	hdr := rc.Header()
	hdr.Del("Content-Type")
	hdr.Del("Content-Length")
	hdr.Del("ETag")

	rc.state = stateFinalized
	rc.buf.Reset()
	ic.observe(rc.r.Context(), stage, ResultRedirected)

	http.Redirect(rc.w, rc.r, rd.Target, status)

	return nil
}
