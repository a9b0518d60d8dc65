package futures_wss

import (
	"sync"
	"sync/atomic"
	"time"

	"okex-futures-go/core/log"
)

// Heartbeat sends an application ping every interval and counts pings left
// without a pong, failed writes included. Once threshold pings are unanswered
// it calls onStale and stops.
type Heartbeat struct {
	Sign      string
	interval  time.Duration
	threshold int32
	missed    int32
	ping      func() error
	onStale   func()
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewHeartbeat(sign string, interval time.Duration, threshold int, ping func() error, onStale func()) *Heartbeat {
	if threshold <= 0 {
		threshold = MissedPongs
	}
	return &Heartbeat{
		Sign:      sign,
		interval:  interval,
		threshold: int32(threshold),
		ping:      ping,
		onStale:   onStale,
		stop:      make(chan struct{}),
	}
}

// Run blocks until Stop is called or the connection is found stale
func (hb *Heartbeat) Run() {
	tr := time.NewTicker(hb.interval)
	defer tr.Stop()
	for {
		select {
		case <-hb.stop:
			return
		case <-tr.C:
			if !hb.tick() {
				return
			}
		}
	}
}

func (hb *Heartbeat) tick() bool {
	select {
	case <-hb.stop:
		return false
	default:
	}
	if atomic.LoadInt32(&hb.missed) >= hb.threshold {
		log.Warnln(log.Conn, hb.Sign, "okex heartbeat missed", hb.threshold, "pongs, reconnect")
		hb.Stop()
		hb.onStale()
		return false
	}
	// a ping that could not be written is a miss as well
	atomic.AddInt32(&hb.missed, 1)
	if err := hb.ping(); err != nil {
		log.Warnln(log.Conn, hb.Sign, "okex heartbeat ping error", err)
	}
	return true
}

// Pong resets the missed counter
func (hb *Heartbeat) Pong() {
	atomic.StoreInt32(&hb.missed, 0)
}

func (hb *Heartbeat) Missed() int {
	return int(atomic.LoadInt32(&hb.missed))
}

func (hb *Heartbeat) Stop() {
	hb.stopOnce.Do(func() {
		close(hb.stop)
	})
}
