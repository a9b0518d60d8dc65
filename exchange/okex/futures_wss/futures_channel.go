package futures_wss

import (
	"context"
	"sync"

	cmap "github.com/orcaman/concurrent-map"

	"okex-futures-go/core/log"
)

// Future is the pending reply of one request
type Future struct {
	Channel string
	done    chan struct{}
	once    sync.Once
	resp    []ServerResponse
	err     error
}

func newFuture(channel string) *Future {
	return &Future{Channel: channel, done: make(chan struct{})}
}

func (f *Future) settle(resp []ServerResponse, err error) {
	f.once.Do(func() {
		f.resp, f.err = resp, err
		close(f.done)
	})
}

// Done is closed once the reply arrived or the request failed
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait returns the reply entries. ctx only bounds the wait, the request stays queued.
func (f *Future) Wait(ctx context.Context) ([]ServerResponse, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type pendingRequest struct {
	req    *ClientRequest
	future *Future
	sent   bool
}

// lane holds the requests of one channel, only the head is ever on the wire
type lane struct {
	mu    sync.Mutex
	queue []*pendingRequest
}

// ChannelCorrelator serializes request and reply per channel key. Lanes live
// as long as the correlator.
type ChannelCorrelator struct {
	Sign  string
	lanes cmap.ConcurrentMap
	send  func(req *ClientRequest) error
}

func NewChannelCorrelator(sign string, send func(req *ClientRequest) error) *ChannelCorrelator {
	return &ChannelCorrelator{
		Sign:  sign,
		lanes: cmap.New(),
		send:  send,
	}
}

func (cc *ChannelCorrelator) lane(key string) *lane {
	cc.lanes.SetIfAbsent(key, &lane{})
	l, _ := cc.lanes.Get(key)
	return l.(*lane)
}

// SendToChannel queues req on key. It is sent right away when the lane is
// idle, otherwise once every earlier request on key has settled.
func (cc *ChannelCorrelator) SendToChannel(key string, req *ClientRequest) *Future {
	l := cc.lane(key)
	p := &pendingRequest{req: req, future: newFuture(key)}
	l.mu.Lock()
	l.queue = append(l.queue, p)
	idle := len(l.queue) == 1
	l.mu.Unlock()
	if idle {
		cc.dispatch(l)
	}
	return p.future
}

// dispatch puts the head of l on the wire, dropping heads whose send fails
func (cc *ChannelCorrelator) dispatch(l *lane) {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 || l.queue[0].sent {
			l.mu.Unlock()
			return
		}
		head := l.queue[0]
		head.sent = true
		l.mu.Unlock()

		err := cc.send(head.req)
		if err == nil {
			return
		}
		log.Warnln(log.Wss, cc.Sign, "okex channel", head.future.Channel, "send error", err)
		l.mu.Lock()
		if len(l.queue) > 0 && l.queue[0] == head {
			l.queue = l.queue[1:]
		}
		l.mu.Unlock()
		head.future.settle(nil, err)
	}
}

// Resolve settles the in flight request of every lane that has entries in
// the frame and returns true when at least one lane matched.
func (cc *ChannelCorrelator) Resolve(entries []ServerResponse) bool {
	matched := false
	for key, group := range groupByChannel(entries) {
		v, ok := cc.lanes.Get(key)
		if !ok {
			continue
		}
		l := v.(*lane)
		l.mu.Lock()
		if len(l.queue) == 0 || !l.queue[0].sent {
			l.mu.Unlock()
			continue
		}
		head := l.queue[0]
		l.queue = l.queue[1:]
		next := len(l.queue) > 0
		l.mu.Unlock()

		matched = true
		head.future.settle(group, nil)
		if next {
			go cc.dispatch(l)
		}
	}
	return matched
}

// RejectAll fails every queued request with err
func (cc *ChannelCorrelator) RejectAll(err error) int {
	n := 0
	for item := range cc.lanes.IterBuffered() {
		l := item.Val.(*lane)
		l.mu.Lock()
		queue := l.queue
		l.queue = nil
		l.mu.Unlock()
		for _, p := range queue {
			p.future.settle(nil, err)
			n++
		}
	}
	return n
}

// Pending returns the number of queued requests on key
func (cc *ChannelCorrelator) Pending(key string) int {
	v, ok := cc.lanes.Get(key)
	if !ok {
		return 0
	}
	l := v.(*lane)
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (cc *ChannelCorrelator) Has(key string) bool {
	return cc.lanes.Has(key)
}

func groupByChannel(entries []ServerResponse) map[string][]ServerResponse {
	groups := make(map[string][]ServerResponse)
	for _, e := range entries {
		groups[e.Channel] = append(groups[e.Channel], e)
	}
	return groups
}
