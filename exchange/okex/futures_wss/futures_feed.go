package futures_wss

import "okex-futures-go/core/log"

// Sink receives the data payload of subscription entries
type Sink interface {
	Push(channel string, payload []byte) error
}

// SinkHandler forwards every entry to sink and then to next when set
func SinkHandler(sink Sink, next func(ServerResponse)) func(ServerResponse) {
	return func(r ServerResponse) {
		if err := sink.Push(r.Channel, r.Data); err != nil {
			log.Warnln(log.Redis, "okex feed push", r.Channel, err)
		}
		if next != nil {
			next(r)
		}
	}
}
