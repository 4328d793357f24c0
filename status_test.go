package rintercept_test

import (
	"testing"

	"github.com/advdv/rintercept"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	set := rintercept.Codes(404, 403, 404)
	assert.Equal(t, []int{404, 403}, set.Codes())
	assert.True(t, set.Contains(403))
	assert.False(t, set.Contains(500))
	assert.Equal(t, "404,403", set.String())
}

func TestParseStatusCodes(t *testing.T) {
	set, err := rintercept.ParseStatusCodes("401, 403")
	require.NoError(t, err)
	assert.Equal(t, []int{401, 403}, set.Codes())

	set, err = rintercept.ParseStatusCodes("500-502,599")
	require.NoError(t, err)
	assert.Equal(t, []int{500, 501, 502, 599}, set.Codes())

	set, err = rintercept.ParseStatusCodes("598-")
	require.NoError(t, err)
	assert.Equal(t, []int{598, 599}, set.Codes())

	for _, bad := range []string{"", "abc", "600-700"} {
		_, err := rintercept.ParseStatusCodes(bad)
		require.ErrorIs(t, err, rintercept.ErrInvalidArgument, "expression: %q", bad)
	}
}
