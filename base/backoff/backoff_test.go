package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialGrowsAndCaps(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	ctx := context.Background()

	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(ctx))
	req.Equal(2*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(ctx))
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(ctx))
	// capped at limit
	req.Equal(4*time.Millisecond, b.NextDuration)
	req.Equal(3, b.Count())

	b.Reset()
	req.Equal(time.Millisecond, b.NextDuration)
	req.Equal(0, b.Count())
}

func TestBackoffRespectsCancel(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Minute, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := b.Backoff(ctx)
	req.ErrorIs(err, context.Canceled)
	req.Equal(0, b.Count())
}
