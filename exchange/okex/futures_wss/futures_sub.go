package futures_wss

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map"

	"okex-futures-go/core/log"
)

type Subscription struct {
	Id     string
	Option SubscriptionOption

	channel     string
	needRequest bool
	active      int32
}

// Channel is the routing key the subscription was registered under
func (s *Subscription) Channel() string {
	return s.channel
}

func (s *Subscription) Active() bool {
	return atomic.LoadInt32(&s.active) == 1
}

func (s *Subscription) deliver(entry ServerResponse) {
	if !s.Active() || s.Option.Handler == nil {
		return
	}
	s.Option.Handler(entry)
}

// SubscriptionRegistry keeps subscriptions in registration order for replay
// and routes inbound entries to every handler of their channel.
type SubscriptionRegistry struct {
	Sign string
	mu   sync.Mutex
	subs []*Subscription
	// channel -> []*Subscription, replaced on every change
	routes cmap.ConcurrentMap
	send   func(req *ClientRequest) error
}

func NewSubscriptionRegistry(sign string, send func(req *ClientRequest) error) *SubscriptionRegistry {
	return &SubscriptionRegistry{
		Sign:   sign,
		routes: cmap.New(),
		send:   send,
	}
}

// Subscribe validates opt, registers its route and sends addChannel when
// the feed needs one. A failed send is not an error: the subscription is
// kept and sent again by Replay.
func (sr *SubscriptionRegistry) Subscribe(opt SubscriptionOption) (*Subscription, error) {
	channel, need, err := opt.channel()
	if err != nil {
		return nil, err
	}
	if opt.Id == "" {
		opt.Id = uuid.NewString()
	}
	sub := &Subscription{Id: opt.Id, Option: opt, channel: channel, needRequest: need, active: 1}

	sr.mu.Lock()
	for _, s := range sr.subs {
		if s.Id == sub.Id {
			sr.mu.Unlock()
			return nil, fmt.Errorf("%w: duplicate subscription id %q", ErrInvalidParameter, sub.Id)
		}
	}
	sr.subs = append(sr.subs, sub)
	sr.rebuildRoute(channel)
	sr.mu.Unlock()

	if need {
		sr.sendChannel(EventAddChannel, channel)
	}
	log.Infoln(log.Wss, sr.Sign, "okex subscribe", sub.Id, channel)
	return sub, nil
}

// Unsubscribe stops delivery to id and reports whether it existed. The last
// subscriber of a requested channel also sends removeChannel.
func (sr *SubscriptionRegistry) Unsubscribe(id string) bool {
	sr.mu.Lock()
	var sub *Subscription
	for i, s := range sr.subs {
		if s.Id == id {
			sub = s
			sr.subs = append(sr.subs[:i:i], sr.subs[i+1:]...)
			break
		}
	}
	if sub == nil {
		sr.mu.Unlock()
		return false
	}
	atomic.StoreInt32(&sub.active, 0)
	last := sr.rebuildRoute(sub.channel) == 0
	sr.mu.Unlock()

	if last && sub.needRequest {
		sr.sendChannel(EventRemoveChannel, sub.channel)
	}
	log.Infoln(log.Wss, sr.Sign, "okex unsubscribe", id, sub.channel)
	return true
}

// Replay sends addChannel again for every stored subscription, with the
// channel name rebuilt from its options.
func (sr *SubscriptionRegistry) Replay() int {
	sr.mu.Lock()
	subs := make([]*Subscription, len(sr.subs))
	copy(subs, sr.subs)
	sr.mu.Unlock()

	sent := map[string]bool{}
	for _, s := range subs {
		channel, need, err := s.Option.channel()
		if err != nil || !need || sent[channel] {
			continue
		}
		sent[channel] = true
		sr.sendChannel(EventAddChannel, channel)
	}
	return len(sent)
}

// Dispatch hands every entry to all handlers of its channel and returns the number of deliveries
func (sr *SubscriptionRegistry) Dispatch(entries []ServerResponse) int {
	n := 0
	for _, e := range entries {
		v, ok := sr.routes.Get(e.Channel)
		if !ok {
			continue
		}
		for _, s := range v.([]*Subscription) {
			s.deliver(e)
			n++
		}
	}
	return n
}

func (sr *SubscriptionRegistry) Subscriptions() []*Subscription {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	out := make([]*Subscription, len(sr.subs))
	copy(out, sr.subs)
	return out
}

// rebuildRoute must be called with mu held
func (sr *SubscriptionRegistry) rebuildRoute(channel string) int {
	var route []*Subscription
	for _, s := range sr.subs {
		if s.channel == channel {
			route = append(route, s)
		}
	}
	if len(route) == 0 {
		sr.routes.Remove(channel)
	} else {
		sr.routes.Set(channel, route)
	}
	return len(route)
}

func (sr *SubscriptionRegistry) sendChannel(event, channel string) {
	err := sr.send(&ClientRequest{Event: event, Channel: channel})
	if err == nil {
		return
	}
	if errors.Is(err, ErrNotConnected) {
		log.Debugln(log.Wss, sr.Sign, "okex", event, channel, "deferred until connected")
		return
	}
	log.Warnln(log.Wss, sr.Sign, "okex", event, channel, "send error", err)
}
