package httpapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Shutdown Timeout Tests
// ============================================================================

func TestServerShutdownTimeout(t *testing.T) {
	t.Run("ConfiguredTimeoutIsCarried", func(t *testing.T) {
		srv := NewServer(0, 250*time.Millisecond, nil)

		assert.Equal(t, 250*time.Millisecond, srv.shutdownTimeout)
	})

	t.Run("NonPositiveTimeoutFallsBackToDefault", func(t *testing.T) {
		assert.Equal(t, defaultShutdownTimeout, NewServer(0, 0, nil).shutdownTimeout)
		assert.Equal(t, defaultShutdownTimeout, NewServer(0, -time.Second, nil).shutdownTimeout)
	})

	t.Run("GracefulShutdownOnContextCancel", func(t *testing.T) {
		// Port 0 binds an ephemeral port so the test cannot collide.
		srv := NewServer(0, time.Second, nil)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- srv.Start(ctx)
		}()

		// Give the listener a moment to come up, then signal shutdown.
		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("server did not shut down within the configured timeout")
		}
	})
}
