package config

import "okex-futures-go/core/log"

type ApiUser struct {
	ApiSign string `json:"api_sign,omitempty" yaml:"api_sign,omitempty"`
	ExName  string `json:"exchange,omitempty" yaml:"exchange,omitempty"`
	ExType  string `json:"ex_type,omitempty" yaml:"ex_type,omitempty"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Secret  string `json:"secret,omitempty" yaml:"secret,omitempty"`
}

type RedisUser struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     string `json:"port,omitempty" yaml:"port,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Db       int    `json:"database,omitempty" yaml:"database,omitempty"`
	MaxIdle  int    `json:"max_idle,omitempty" yaml:"max_idle,omitempty"`
	// ListLen caps every feed list; 0 means DefaultFeedListLen
	ListLen int64 `json:"list_len,omitempty" yaml:"list_len,omitempty"`
}

// OkexConfig tunes the websocket client. Intervals are in seconds.
type OkexConfig struct {
	WssUrl                 string  `json:"wss_url,omitempty" yaml:"wss_url,omitempty"`
	PingInterval           int64   `json:"ping_interval,omitempty" yaml:"ping_interval,omitempty"`
	MissedPongs            int     `json:"missed_pongs,omitempty" yaml:"missed_pongs,omitempty"`
	ReconnectWait          int64   `json:"reconnect_wait,omitempty" yaml:"reconnect_wait,omitempty"`
	HeartbeatReconnectWait int64   `json:"heartbeat_reconnect_wait,omitempty" yaml:"heartbeat_reconnect_wait,omitempty"`
	DialRetries            uint    `json:"dial_retries,omitempty" yaml:"dial_retries,omitempty"`
	RequestRate            float64 `json:"request_rate,omitempty" yaml:"request_rate,omitempty"`
	Proxy                  string  `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	// symbol, contract type and lever rate used by the order helpers
	Symbol       string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	ContractType string `json:"contract_type,omitempty" yaml:"contract_type,omitempty"`
	LeverRate    string `json:"lever_rate,omitempty" yaml:"lever_rate,omitempty"`
}

// NoticeConfig points at a feishu bot webhook that receives connection alerts
type NoticeConfig struct {
	WebhookUrl string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`
}

// Config is the file layout read by LoadConfig
type Config struct {
	Api    ApiUser      `json:"api" yaml:"api"`
	Okex   OkexConfig   `json:"okex" yaml:"okex"`
	Redis  *RedisUser   `json:"redis,omitempty" yaml:"redis,omitempty"`
	Notice NoticeConfig `json:"notice" yaml:"notice"`
	Log    log.Log      `json:"log" yaml:"log"`
}
