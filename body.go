package rintercept

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// BodyKind tells how the content of a [Body] is represented.
type BodyKind int

const (
	// KindNone is the kind of the zero [Body]: no content at all.
	KindNone BodyKind = iota
	// KindJSON is a structured JSON value.
	KindJSON
	// KindText is a textual payload.
	KindText
	// KindBinary is an opaque byte sequence.
	KindBinary
)

func (k BodyKind) String() string {
	switch k {
	case KindJSON:
		return "json"
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return "none"
	}
}

// Body is the content handed to, and returned by, interception callbacks. The zero value is an
// absent body. Bodies are immutable values: the Set and Delete methods return a new body.
type Body struct {
	kind  BodyKind
	raw   []byte
	text  string
	value any
	typed bool // JSON body holds a Go value that is encoded lazily
}

// JSON returns a JSON body that encodes 'v' when serialized.
func JSON(v any) Body { return Body{kind: KindJSON, value: v, typed: true} }

// RawJSON returns a JSON body from already encoded JSON text.
func RawJSON(data []byte) Body { return Body{kind: KindJSON, raw: data} }

// Text returns a textual body.
func Text(s string) Body { return Body{kind: KindText, text: s} }

// Binary returns an opaque binary body.
func Binary(data []byte) Body { return Body{kind: KindBinary, raw: data} }

// Content builds a body from a dynamically typed value: strings become text, byte slices become
// binary, [json.RawMessage] is taken as encoded JSON and everything else is encoded as JSON. A nil
// value results in the absent body.
func Content(v any) Body {
	switch v := v.(type) {
	case nil:
		return Body{}
	case Body:
		return v
	case string:
		return Text(v)
	case json.RawMessage:
		return RawJSON(v)
	case []byte:
		return Binary(v)
	default:
		return JSON(v)
	}
}

// Kind returns how the body is represented.
func (b Body) Kind() BodyKind { return b.kind }

// IsZero reports whether the body is absent.
func (b Body) IsZero() bool { return b.kind == KindNone }

// Bytes serializes the body for transmission.
func (b Body) Bytes() ([]byte, error) {
	switch b.kind {
	case KindJSON:
		if !b.typed {
			if !gjson.ValidBytes(b.raw) {
				return nil, errors.New("body holds invalid JSON")
			}

			return b.raw, nil
		}

		return marshalJSON(b.value)
	case KindText:
		return []byte(b.text), nil
	case KindBinary:
		return b.raw, nil
	default:
		return nil, nil
	}
}

// String returns the body as a string. JSON that cannot be encoded results in an empty string.
func (b Body) String() string {
	if b.kind == KindText {
		return b.text
	}

	data, err := b.Bytes()
	if err != nil {
		return ""
	}

	return string(data)
}

// Value returns the content as a Go value. JSON is decoded into maps, slices, strings, booleans,
// nil and [json.Number] values, text into a string and binary into a byte slice.
func (b Body) Value() (any, error) {
	switch b.kind {
	case KindJSON:
		if b.typed {
			return b.value, nil
		}

		var v any
		if err := b.Decode(&v); err != nil {
			return nil, err
		}

		return v, nil
	case KindText:
		return b.text, nil
	case KindBinary:
		return b.raw, nil
	default:
		return nil, nil
	}
}

// Decode decodes a JSON body into 'v'.
func (b Body) Decode(v any) error {
	if b.kind != KindJSON {
		return errors.Newf("cannot decode %s body as JSON", b.kind)
	}

	data, err := b.Bytes()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decode JSON body")
	}

	return nil
}

// Get looks up a value in a JSON body with a gjson path. Other kinds return an empty result.
func (b Body) Get(path string) gjson.Result {
	if b.kind != KindJSON {
		return gjson.Result{}
	}

	data, err := b.Bytes()
	if err != nil {
		return gjson.Result{}
	}

	return gjson.GetBytes(data, path)
}

// Set returns a copy of a JSON body with 'value' stored at the sjson 'path'. Existing keys keep
// their position and new keys are appended.
func (b Body) Set(path string, value any) (Body, error) {
	return b.edit(func(data []byte) ([]byte, error) { return sjson.SetBytes(data, path, value) })
}

// Delete returns a copy of a JSON body without the value at the sjson 'path'.
func (b Body) Delete(path string) (Body, error) {
	return b.edit(func(data []byte) ([]byte, error) { return sjson.DeleteBytes(data, path) })
}

func (b Body) edit(fn func([]byte) ([]byte, error)) (Body, error) {
	if b.kind != KindJSON {
		return b, errors.Newf("cannot edit %s body as JSON", b.kind)
	}

	data, err := b.Bytes()
	if err != nil {
		return b, err
	}

	// sjson may edit in place when capacity allows
	data, err = fn(bytes.Clone(data))
	if err != nil {
		return b, errors.Wrap(err, "edit JSON body")
	}

	return RawJSON(data), nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "encode JSON body")
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
