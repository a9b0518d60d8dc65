package request

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces outbound frames and counts them per second, minute and hour
type Limiter struct {
	limiter *rate.Limiter
	Times   *Times
}

// NewLimiter allows perSec frames per second with a burst of the same size.
// perSec <= 0 disables pacing but still counts.
func NewLimiter(perSec float64) *Limiter {
	l := &Limiter{Times: NewTimes()}
	if perSec > 0 {
		burst := int(perSec)
		if burst < 1 {
			burst = 1
		}
		l.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
	}
	return l
}

// Wait blocks until a frame may be sent or ctx is done
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	l.Times.Update()
	return nil
}
