package feed

import (
	"strconv"

	"okex-futures-go/adapter/redis"
	"okex-futures-go/adapter/timer"
)

const (
	DefaultPrefix  = "okex"
	DefaultListLen = 1000
)

// RedisSink keeps the latest entries of each channel in a capped redis list
// "<prefix>:<channel>" and records the last update time of every channel in
// the hash "<prefix>:channels".
type RedisSink struct {
	rc      *redis.RedisClient
	prefix  string
	listLen int64
}

func NewRedisSink(rc *redis.RedisClient, prefix string, listLen int64) *RedisSink {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if listLen <= 0 {
		listLen = DefaultListLen
	}
	return &RedisSink{rc: rc, prefix: prefix, listLen: listLen}
}

func (s *RedisSink) Key(channel string) string {
	return s.prefix + ":" + channel
}

func (s *RedisSink) Push(channel string, payload []byte) error {
	if err := s.rc.LpushTrim(s.Key(channel), string(payload), s.listLen); err != nil {
		return err
	}
	return s.rc.Hset(s.prefix+":channels", channel, strconv.FormatInt(timer.MicNow(), 10))
}

// Latest returns up to n entries of channel, newest first
func (s *RedisSink) Latest(channel string, n int64) ([]string, error) {
	return s.rc.Lrange(s.Key(channel), 0, n-1)
}

// Channels maps every channel pushed so far to its last update in unix milliseconds
func (s *RedisSink) Channels() (map[string]int64, error) {
	raw, err := s.rc.Hgetall(s.prefix + ":channels")
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for k, v := range raw {
		ts, _ := strconv.ParseInt(v, 10, 64)
		out[k] = ts
	}
	return out, nil
}
