package rintercept

import (
	"slices"

	"github.com/advdv/rintercept/internal/httppattern"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Reverser maps route names to their patterns so that handlers and redirect gates can build
// paths instead of hard-coding them.
type Reverser struct {
	routes map[string]*httppattern.Pattern
}

// NewReverser creates an empty reverser.
func NewReverser() *Reverser {
	return &Reverser{routes: map[string]*httppattern.Pattern{}}
}

// Reverse builds the path of route 'name', filling its wildcards with 'vals' in order.
func (r *Reverser) Reverse(name string, vals ...string) (string, error) {
	pat, ok := r.routes[name]
	if !ok {
		known := lo.Keys(r.routes)
		slices.Sort(known)

		return "", errors.Newf("no route named %q, known routes: %v", name, known)
	}

	path, err := httppattern.Build(pat, vals...)
	if err != nil {
		return "", errors.Wrapf(err, "build route %q", name)
	}

	return path, nil
}

// Named registers 'pattern' as route 'name' and returns the pattern. It panics when the name is
// taken or the pattern does not parse.
func (r *Reverser) Named(name, pattern string) string {
	pattern, err := r.NamedPattern(name, pattern)
	if err != nil {
		panic("rintercept: " + err.Error())
	}

	return pattern
}

// NamedPattern registers 'pattern' as route 'name' and returns the pattern.
func (r *Reverser) NamedPattern(name, pattern string) (string, error) {
	if _, exists := r.routes[name]; exists {
		return pattern, errors.Newf("route %q already exists", name)
	}

	pat, err := httppattern.ParsePattern(pattern)
	if err != nil {
		return pattern, errors.Wrapf(err, "parse route %q", name)
	}

	r.routes[name] = pat

	return pattern, nil
}
