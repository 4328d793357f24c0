package rintercept_test

import (
	"net/http"
	"sync"
	"testing"

	"github.com/advdv/rintercept"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	ic := rintercept.New()
	def := ic.Config()
	require.True(t, def.Logging.Enabled)
	require.NotNil(t, def.Logging.Sink)
	require.False(t, def.ErrorHandling.Rethrow)
	require.Nil(t, def.ErrorHandling.OnError)

	logs := rintercept.NewTestLogger(t)
	got := ic.Configure(
		rintercept.WithLogging(false),
		rintercept.WithSink(logs),
		rintercept.WithRethrow(true),
		rintercept.WithOnError(func(error, *http.Request, rintercept.OriginalResponse) {}),
		nil,
	)

	require.False(t, got.Logging.Enabled)
	require.Same(t, logs, got.Logging.Sink)
	require.True(t, got.ErrorHandling.Rethrow)
	require.NotNil(t, got.ErrorHandling.OnError)

	t.Run("partial update keeps other settings", func(t *testing.T) {
		got := ic.Configure(rintercept.WithLogging(true), rintercept.WithSink(nil))
		assert.True(t, got.Logging.Enabled)
		assert.Same(t, logs, got.Logging.Sink)
		assert.True(t, got.ErrorHandling.Rethrow)
	})

	t.Run("nil handler clears it", func(t *testing.T) {
		got := ic.Configure(rintercept.WithOnError(nil))
		assert.Nil(t, got.ErrorHandling.OnError)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		snap := ic.Config()
		snap.ErrorHandling.Rethrow = false
		assert.True(t, ic.Config().ErrorHandling.Rethrow)
	})
}

func TestConfigureConcurrently(t *testing.T) {
	ic := rintercept.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)

		go func() {
			defer wg.Done()
			ic.Configure(rintercept.WithRethrow(i%2 == 0))
		}()

		go func() {
			defer wg.Done()
			_ = ic.Config()
		}()
	}

	wg.Wait()
	require.True(t, ic.Config().Logging.Enabled)
}

func TestPolicyFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "")
		pol, err := rintercept.PolicyFromEnv()
		require.NoError(t, err)
		assert.True(t, pol.Logging.Enabled)
		assert.False(t, pol.ErrorHandling.Rethrow)
		assert.NotNil(t, pol.Logging.Sink)
	})

	t.Run("production disables logging", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		pol, err := rintercept.PolicyFromEnv()
		require.NoError(t, err)
		assert.False(t, pol.Logging.Enabled)
	})

	t.Run("explicit logging wins", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("RINTERCEPT_LOGGING", "true")
		t.Setenv("RINTERCEPT_RETHROW", "true")
		pol, err := rintercept.PolicyFromEnv()
		require.NoError(t, err)
		assert.True(t, pol.Logging.Enabled)
		assert.True(t, pol.ErrorHandling.Rethrow)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("RINTERCEPT_RETHROW", "maybe")
		_, err := rintercept.PolicyFromEnv()
		require.Error(t, err)
	})
}
