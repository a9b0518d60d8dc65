package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesRollover(t *testing.T) {
	ts := NewTimes()
	now := time.Unix(3600*10+59, 0)
	ts.now = func() time.Time { return now }

	ts.Update()
	ts.Update()
	sec, min, hour := ts.Snapshot()
	assert.Equal(t, []int64{2, 2, 2}, []int64{sec, min, hour})

	now = now.Add(time.Second)
	ts.Update()
	sec, min, hour = ts.Snapshot()
	assert.Equal(t, []int64{1, 1, 3}, []int64{sec, min, hour})
}

func TestLimiterCounts(t *testing.T) {
	l := NewLimiter(0)
	l.Times.now = func() time.Time { return time.Unix(7200, 0) }
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	sec, _, _ := l.Times.Snapshot()
	assert.Equal(t, int64(5), sec)
}

func TestLimiterHonoursContext(t *testing.T) {
	l := NewLimiter(1)
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx))
}
