package rintercept

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidCallback is returned at registration when the interception callback is missing.
	ErrInvalidCallback = errors.New("callback must be a function")
	// ErrInvalidArgument is returned at registration when an argument other than the callback is unusable.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCallbackFailure matches every error that a user callback returned or panicked with.
	ErrCallbackFailure = errors.New("interception callback failed")
)

// Reason classifies the errors of this package.
type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonInvalidCallback
	ReasonInvalidArgument
	ReasonCallbackFailure
)

func (k Reason) String() string {
	switch k {
	case ReasonInvalidCallback:
		return "invalid_callback"
	case ReasonInvalidArgument:
		return "invalid_argument"
	case ReasonCallbackFailure:
		return "callback_failure"
	default:
		return "unknown"
	}
}

// ReasonOf returns the reason of 'err', or [ReasonUnknown] if it is not an error of this package.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ReasonUnknown
	case errors.Is(err, ErrInvalidCallback):
		return ReasonInvalidCallback
	case errors.Is(err, ErrInvalidArgument):
		return ReasonInvalidArgument
	case errors.Is(err, ErrCallbackFailure):
		return ReasonCallbackFailure
	default:
		return ReasonUnknown
	}
}

// CallbackError describes a failure of a user callback while a response was being finalized.
type CallbackError struct {
	Stage  Stage
	Method string
	Path   string
	err    error
}

func newCallbackError(stage Stage, r *http.Request, cause error) *CallbackError {
	return &CallbackError{Stage: stage, Method: r.Method, Path: r.URL.Path, err: cause}
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("%s callback failed for %s %s: %v", e.Stage, e.Method, e.Path, e.err)
}

// Unwrap returns the error the callback failed with.
func (e *CallbackError) Unwrap() error { return e.err }

// Is makes every callback error match [ErrCallbackFailure].
func (e *CallbackError) Is(target error) bool { return target == ErrCallbackFailure } //nolint:errorlint

// CallbackErrorOf returns the callback error wrapped by 'err', if any.
func CallbackErrorOf(err error) (*CallbackError, bool) {
	var cerr *CallbackError
	ok := errors.As(err, &cerr)
	return cerr, ok
}

func invalidCallback(stage Stage) error {
	return errors.Wrapf(ErrInvalidCallback, "%s", stage)
}

func invalidArgument(stage Stage, format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, "%s: "+format, append([]any{stage}, args...)...)
}

// recovered turns a value recovered from a panicking callback into an error.
func recovered(v any) error {
	if err, ok := v.(error); ok {
		return errors.Wrap(err, "callback panicked")
	}

	return errors.Newf("callback panicked: %v", v)
}
