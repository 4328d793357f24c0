package rintercept

import (
	"bytes"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const (
	// DefaultContentType is assumed when a response does not declare a content type.
	DefaultContentType = "application/json; charset=utf-8"
	// HTMLContentType labels JSON-declared content that turned out not to be JSON.
	HTMLContentType = "text/html; charset=utf-8"
	// TextContentType labels plain textual content.
	TextContentType = "text/plain; charset=utf-8"
	// BinaryContentType labels opaque content.
	BinaryContentType = "application/octet-stream"
)

// Classify decodes a buffered response chunk given its declared content type. It returns the body
// as seen by interception callbacks and the effective content type label. It never fails: content
// that does not decode as declared falls back to text, and an empty non-JSON chunk is empty text.
func Classify(chunk []byte, declared string) (Body, string) {
	if strings.TrimSpace(declared) == "" {
		declared = DefaultContentType
	}

	chunk = bytes.Clone(chunk)

	if strings.Contains(strings.ToLower(declared), "application/json") {
		trimmed := bytes.TrimSpace(chunk)
		if len(trimmed) == 0 {
			return RawJSON([]byte("{}")), declared
		}

		if gjson.ValidBytes(trimmed) {
			return RawJSON(trimmed), declared
		}

		// frameworks often label plain error text as JSON
		return Text(string(chunk)), HTMLContentType
	}

	if len(chunk) == 0 || isTextual(declared) || (mediaType(declared) == "" && utf8.Valid(chunk)) {
		return Text(string(chunk)), declared
	}

	return Binary(chunk), declared
}

// DetectContentType guesses the content type for content that a callback produced without an
// explicit type. The string checks are a heuristic: a text body such as "[not json]" is
// labelled as JSON.
func DetectContentType(b Body) string {
	switch b.Kind() {
	case KindBinary:
		return BinaryContentType
	case KindJSON:
		return DefaultContentType
	case KindText:
		return detectText(b.text)
	default:
		return TextContentType
	}
}

func detectText(s string) string {
	trimmed := strings.TrimSpace(s)
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		return DefaultContentType
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "<!doctype"), strings.HasPrefix(lower, "<html"):
		return HTMLContentType
	case strings.Contains(lower, "<body") && strings.Contains(lower, "</body>"):
		return HTMLContentType
	case strings.Contains(lower, "<head") && strings.Contains(lower, "</head>"):
		return HTMLContentType
	default:
		return TextContentType
	}
}

func isTextual(declared string) bool {
	mt := mediaType(declared)

	switch {
	case strings.HasPrefix(mt, "text/"),
		strings.HasSuffix(mt, "+json"),
		strings.HasSuffix(mt, "+xml"):
		return true
	}

	switch mt {
	case "application/xml",
		"application/javascript",
		"application/ecmascript",
		"application/x-www-form-urlencoded",
		"application/x-ndjson":
		return true
	}

	return false
}

func mediaType(declared string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		mt, _, _ = strings.Cut(declared, ";")
	}

	return strings.ToLower(strings.TrimSpace(mt))
}
