package futures_wss

import (
	"context"
	"time"

	"okex-futures-go/adapter/client"
	"okex-futures-go/adapter/timer"
	"okex-futures-go/core/config"
)

type Config struct {
	WssUrl                 string
	ProxyUrl               string
	PingInterval           time.Duration
	MissedPongs            int
	ReconnectWait          time.Duration
	HeartbeatReconnectWait time.Duration
	DialRetries            uint
	DialBackoff            time.Duration
	// frames per second, 0 disables pacing
	RequestRate float64
	// Dial opens a transport, a gorilla WssSocket when nil
	Dial func(ctx context.Context) (client.Transport, error)
}

// NewConfig fills every unset field of the file config with the exchange defaults
func NewConfig(okex config.OkexConfig) Config {
	cfg := Config{
		WssUrl:                 okex.WssUrl,
		ProxyUrl:               okex.Proxy,
		PingInterval:           timer.Seconds(okex.PingInterval, time.Duration(PingInterval)*time.Second),
		MissedPongs:            okex.MissedPongs,
		ReconnectWait:          timer.Seconds(okex.ReconnectWait, time.Duration(ReconnectWait)*time.Second),
		HeartbeatReconnectWait: timer.Seconds(okex.HeartbeatReconnectWait, time.Duration(HeartbeatReconnectWait)*time.Second),
		DialRetries:            okex.DialRetries,
		DialBackoff:            time.Second,
		RequestRate:            okex.RequestRate,
	}
	if cfg.WssUrl == "" {
		cfg.WssUrl = UsdWssUrl
	}
	if cfg.MissedPongs <= 0 {
		cfg.MissedPongs = MissedPongs
	}
	if cfg.DialRetries == 0 {
		cfg.DialRetries = DialRetries
	}
	return cfg
}

func DefaultConfig() Config {
	return NewConfig(config.OkexConfig{})
}
