// Package httppattern parses the routing patterns of [net/http.ServeMux] so they can be turned back
// into concrete paths.
package httppattern

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// Segment is one slash-separated part of a pattern path.
type Segment struct {
	Literal  string // set when the segment is not a wildcard
	Wild     string // name of the wildcard
	Multi    bool   // {name...}
	EndOfDir bool   // {$}
}

// Pattern is a parsed routing pattern.
type Pattern struct {
	Str      string
	Method   string
	Host     string
	Segments []Segment
	Trailing bool // path ends in a slash that is not followed by {$}
}

// ParsePattern parses a pattern in the form of "[METHOD ][HOST]/[PATH]".
func ParsePattern(str string) (*Pattern, error) {
	if len(str) == 0 {
		return nil, errors.New("empty pattern")
	}

	pat := &Pattern{Str: str}
	rest := str

	if method, after, found := strings.Cut(rest, " "); found {
		pat.Method = method
		rest = strings.TrimLeft(after, " \t")
	}

	idx := strings.IndexByte(rest, '/')
	if idx < 0 {
		return nil, errors.Newf("host/path missing /: %q", str)
	}

	pat.Host, rest = rest[:idx], rest[idx+1:]

	seen := map[string]bool{}
	for rest != "" {
		var seg string
		seg, rest, _ = strings.Cut(rest, "/")

		if seg == "" {
			if rest == "" {
				pat.Trailing = true
				break
			}

			return nil, errors.Newf("empty segment in %q", str)
		}

		parsed, err := parseSegment(seg, rest == "")
		if err != nil {
			return nil, errors.Wrapf(err, "bad segment %q", seg)
		}

		if parsed.Wild != "" {
			if seen[parsed.Wild] {
				return nil, errors.Newf("duplicate wildcard name %q", parsed.Wild)
			}

			seen[parsed.Wild] = true
		}

		pat.Segments = append(pat.Segments, parsed)
		if rest == "" && strings.HasSuffix(str, "/") {
			pat.Trailing = true
		}
	}

	return pat, nil
}

func parseSegment(seg string, last bool) (Segment, error) {
	if !strings.HasPrefix(seg, "{") {
		if strings.ContainsAny(seg, "{}") {
			return Segment{}, errors.New("wildcards must be the whole segment")
		}

		lit, err := url.PathUnescape(seg)
		if err != nil {
			return Segment{}, errors.Wrap(err, "unescape")
		}

		return Segment{Literal: lit}, nil
	}

	if !strings.HasSuffix(seg, "}") {
		return Segment{}, errors.New("unterminated wildcard")
	}

	name := seg[1 : len(seg)-1]
	switch {
	case name == "$":
		if !last {
			return Segment{}, errors.New("{$} not at end")
		}

		return Segment{EndOfDir: true}, nil
	case strings.HasSuffix(name, "..."):
		if !last {
			return Segment{}, errors.New("{...} wildcard not at end")
		}

		return Segment{Wild: strings.TrimSuffix(name, "..."), Multi: true}, nil
	case name == "":
		return Segment{}, errors.New("empty wildcard")
	default:
		return Segment{Wild: name}, nil
	}
}

// Build turns the pattern into a path by substituting wildcards with 'vals' in order.
func Build(pat *Pattern, vals ...string) (string, error) {
	var sb strings.Builder

	for _, seg := range pat.Segments {
		switch {
		case seg.EndOfDir:
			sb.WriteByte('/')
			return sb.String(), nil
		case seg.Wild != "":
			if len(vals) < 1 {
				return "", errors.Newf("not enough values for wildcard %q", seg.Wild)
			}

			sb.WriteByte('/')
			if seg.Multi {
				sb.WriteString(escapeMulti(vals[0]))
			} else {
				sb.WriteString(url.PathEscape(vals[0]))
			}

			vals = vals[1:]
		default:
			sb.WriteByte('/')
			sb.WriteString(url.PathEscape(seg.Literal))
		}
	}

	if len(pat.Segments) == 0 || pat.Trailing {
		sb.WriteByte('/')
	}

	return sb.String(), nil
}

func escapeMulti(val string) string {
	parts := strings.Split(strings.TrimPrefix(val, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}

	return strings.Join(parts, "/")
}
