package request

import (
	"sync"
	"time"
)

// Times counts events in the current second, minute and hour
type Times struct {
	SecTimes, MinTimes, HourTimes int64
	LastSec, LastMin, LastHour    int64

	lock sync.Mutex
	now  func() time.Time
}

func NewTimes() *Times {
	return &Times{now: time.Now}
}

func (t *Times) Update() {
	t.lock.Lock()
	defer t.lock.Unlock()
	sec := t.now().Unix()
	min := (sec / 60) * 60
	hour := (sec / 3600) * 3600
	if sec == t.LastSec {
		t.SecTimes++
	} else {
		t.SecTimes = 1
		t.LastSec = sec
	}
	if min == t.LastMin {
		t.MinTimes++
	} else {
		t.MinTimes = 1
		t.LastMin = min
	}
	if hour == t.LastHour {
		t.HourTimes++
	} else {
		t.HourTimes = 1
		t.LastHour = hour
	}
}

// Snapshot returns the current second, minute and hour counts
func (t *Times) Snapshot() (sec, min, hour int64) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.SecTimes, t.MinTimes, t.HourTimes
}
