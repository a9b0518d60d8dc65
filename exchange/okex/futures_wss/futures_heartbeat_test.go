package futures_wss

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pingCounter struct {
	pings int32
	stale int32
	fail  atomic.Value
}

func (p *pingCounter) ping() error {
	if err, ok := p.fail.Load().(error); ok && err != nil {
		return err
	}
	atomic.AddInt32(&p.pings, 1)
	return nil
}

func (p *pingCounter) onStale() { atomic.AddInt32(&p.stale, 1) }

func TestHeartbeatThreshold(t *testing.T) {
	pc := &pingCounter{}
	hb := NewHeartbeat("test", time.Hour, 3, pc.ping, pc.onStale)

	for i := 0; i < 3; i++ {
		assert.True(t, hb.tick())
	}
	assert.Equal(t, 3, hb.Missed())
	assert.Equal(t, int32(0), atomic.LoadInt32(&pc.stale))

	assert.False(t, hb.tick())
	assert.Equal(t, int32(1), atomic.LoadInt32(&pc.stale))
	// no ping goes out on the tick that detects staleness
	assert.Equal(t, int32(3), atomic.LoadInt32(&pc.pings))
	assert.Equal(t, 3, hb.Missed())

	assert.False(t, hb.tick())
	assert.Equal(t, int32(1), atomic.LoadInt32(&pc.stale))
}

func TestHeartbeatPongResets(t *testing.T) {
	pc := &pingCounter{}
	hb := NewHeartbeat("test", time.Hour, 3, pc.ping, pc.onStale)

	hb.tick()
	hb.tick()
	assert.Equal(t, 2, hb.Missed())
	hb.Pong()
	assert.Equal(t, 0, hb.Missed())

	hb.tick()
	hb.tick()
	hb.tick()
	assert.Equal(t, int32(0), atomic.LoadInt32(&pc.stale))
	assert.False(t, hb.tick())
	assert.Equal(t, int32(1), atomic.LoadInt32(&pc.stale))
}

func TestHeartbeatCountsFailedPings(t *testing.T) {
	pc := &pingCounter{}
	pc.fail.Store(errors.New("write failed"))
	hb := NewHeartbeat("test", time.Hour, 3, pc.ping, pc.onStale)

	for i := 0; i < 3; i++ {
		assert.True(t, hb.tick())
	}
	assert.Equal(t, 3, hb.Missed())
	assert.Equal(t, int32(0), atomic.LoadInt32(&pc.pings))

	assert.False(t, hb.tick())
	assert.Equal(t, int32(1), atomic.LoadInt32(&pc.stale))
}

func TestHeartbeatRunAndStop(t *testing.T) {
	pc := &pingCounter{}
	hb := NewHeartbeat("test", 5*time.Millisecond, 3, pc.ping, pc.onStale)

	done := make(chan struct{})
	go func() {
		hb.Run()
		close(done)
	}()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&pc.stale) == 1 }, time.Second, time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after stale")
	}
	hb.Stop()
	hb.Stop()
}

func TestHeartbeatStopBeforeRun(t *testing.T) {
	pc := &pingCounter{}
	hb := NewHeartbeat("test", time.Millisecond, 3, pc.ping, pc.onStale)
	hb.Stop()
	hb.Run()
	assert.Equal(t, int32(0), atomic.LoadInt32(&pc.pings))
}
