package rintercept_test

import (
	"encoding/json"
	"testing"

	"github.com/advdv/rintercept"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent(t *testing.T) {
	for _, tt := range []struct {
		name string
		in   any
		kind rintercept.BodyKind
		exp  string
	}{
		{"nil", nil, rintercept.KindNone, ""},
		{"string", "hello", rintercept.KindText, "hello"},
		{"bytes", []byte{0x01}, rintercept.KindBinary, "\x01"},
		{"raw json", json.RawMessage(`{"a":1}`), rintercept.KindJSON, `{"a":1}`},
		{"map", map[string]any{"a": "<b>"}, rintercept.KindJSON, `{"a":"<b>"}`},
		{"slice", []int{1, 2}, rintercept.KindJSON, `[1,2]`},
		{"body", rintercept.Text("x"), rintercept.KindText, "x"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			body := rintercept.Content(tt.in)
			require.Equal(t, tt.kind, body.Kind())

			data, err := body.Bytes()
			require.NoError(t, err)
			require.Equal(t, tt.exp, string(data))
		})
	}
}

func TestBodyValueRoundTrip(t *testing.T) {
	orig := map[string]any{
		"name":   "gopher",
		"active": true,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"none": nil},
	}

	data, err := rintercept.JSON(orig).Bytes()
	require.NoError(t, err)

	body, label := rintercept.Classify(data, "")
	require.Equal(t, rintercept.DefaultContentType, label)

	got, err := body.Value()
	require.NoError(t, err)
	require.Equal(t, orig, got)
}

func TestBodyNumbersDecodeExactly(t *testing.T) {
	body := rintercept.RawJSON([]byte(`{"id":9007199254740993}`))

	v, err := body.Value()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"id": json.Number("9007199254740993")}, v)

	var dst struct{ ID int64 }
	require.NoError(t, body.Decode(&dst))
	require.Equal(t, int64(9007199254740993), dst.ID)
}

func TestBodyEdit(t *testing.T) {
	body := rintercept.RawJSON([]byte(`{"b":1,"a":{"c":2}}`))

	set, err := body.Set("a.d", "x")
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":{"c":2,"d":"x"}}`, set.String())
	assert.Equal(t, `{"b":1,"a":{"c":2}}`, body.String(), "original must not change")

	del, err := set.Delete("b")
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"c":2,"d":"x"}}`, del.String())
	assert.Equal(t, "x", del.Get("a.d").String())

	_, err = rintercept.Text("x").Set("a", 1)
	require.Error(t, err)
	assert.False(t, rintercept.Binary(nil).Get("a").Exists())
}

func TestBodyInvalidRawJSON(t *testing.T) {
	_, err := rintercept.RawJSON([]byte(`{"a":`)).Bytes()
	require.Error(t, err)

	require.Error(t, rintercept.Text("{}").Decode(new(any)))
}

func TestBodyKindString(t *testing.T) {
	assert.Equal(t, "none", rintercept.KindNone.String())
	assert.Equal(t, "json", rintercept.KindJSON.String())
	assert.Equal(t, "text", rintercept.KindText.String())
	assert.Equal(t, "binary", rintercept.KindBinary.String())
	assert.True(t, rintercept.Body{}.IsZero())
}
