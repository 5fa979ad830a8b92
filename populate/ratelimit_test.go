package populate_test

import (
	"context"
	"testing"
	"time"

	"github.com/mallendeo/samsung-docs-mcp/populate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request per domain is immediate", func(t *testing.T) {
		t.Parallel()

		limiter := populate.NewDomainLimiter(1)

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "developer.samsung.com"))
		require.NoError(t, limiter.Wait(context.Background(), "img.samsung.com"))
		assert.Less(t, time.Since(start), 100*time.Millisecond, "separate domains do not share a bucket")
	})

	t.Run("second request to a domain waits for the bucket", func(t *testing.T) {
		t.Parallel()

		limiter := populate.NewDomainLimiter(20) // 50ms per token

		require.NoError(t, limiter.Wait(context.Background(), "developer.samsung.com"))
		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "developer.samsung.com"))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("canceled context aborts the wait", func(t *testing.T) {
		t.Parallel()

		limiter := populate.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "developer.samsung.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "developer.samsung.com")
		require.Error(t, err)
	})
}
