package rintercept

import (
	"slices"
	"strconv"
	"strings"

	iie "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const (
	minStatusCode = 100
	maxStatusCode = 599
)

// StatusCodeSet is the set of status codes a gate reacts to.
type StatusCodeSet struct{ codes []int }

// Codes returns a set holding the given status codes.
func Codes(codes ...int) StatusCodeSet {
	return StatusCodeSet{codes: lo.Uniq(codes)}
}

// ParseStatusCodes parses an interval expression such as "401,403" or "500-504,599" into a set.
// Open ended intervals like "500-" are bounded to the valid status code range.
func ParseStatusCodes(expr string) (StatusCodeSet, error) {
	expr = strings.ReplaceAll(expr, " ", "")
	if expr == "" {
		return StatusCodeSet{}, errors.Wrap(ErrInvalidArgument, "empty status code expression")
	}

	parsed, err := iie.ParseExpression(expr)
	if err != nil {
		return StatusCodeSet{}, errors.Mark(errors.Wrapf(err, "parse status codes %q", expr), ErrInvalidArgument)
	}

	var codes []int
	for code := minStatusCode; code <= maxStatusCode; code++ {
		if parsed.Matches(code) {
			codes = append(codes, code)
		}
	}

	if len(codes) == 0 {
		return StatusCodeSet{}, errors.Wrapf(ErrInvalidArgument, "no status codes in %q", expr)
	}

	return StatusCodeSet{codes: codes}, nil
}

// Contains reports whether 'code' is in the set.
func (s StatusCodeSet) Contains(code int) bool { return slices.Contains(s.codes, code) }

// Codes returns the status codes in the set.
func (s StatusCodeSet) Codes() []int { return slices.Clone(s.codes) }

func (s StatusCodeSet) String() string {
	return strings.Join(lo.Map(s.codes, func(c int, _ int) string { return strconv.Itoa(c) }), ",")
}

func (s StatusCodeSet) validate(stage Stage) error {
	if len(s.codes) == 0 {
		return invalidArgument(stage, "status codes must hold at least one status code")
	}

	for _, code := range s.codes {
		if code < minStatusCode || code > maxStatusCode {
			return invalidArgument(stage, "status code %d is out of range", code)
		}
	}

	return nil
}
