package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"okex-futures-go/core/config"
)

type RedisClient struct {
	Client *redis.Pool
}

// NewRedisClient builds a pooled client for the configured server
func NewRedisClient(cfg *config.RedisUser) *RedisClient {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 8
	}
	pool := &redis.Pool{
		MaxIdle:     maxIdle,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			opts := []redis.DialOption{redis.DialDatabase(cfg.Db)}
			if cfg.Password != "" {
				opts = append(opts, redis.DialPassword(cfg.Password))
			}
			return redis.Dial("tcp", addr, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
	return &RedisClient{Client: pool}
}

func (rc *RedisClient) Get() redis.Conn {
	return rc.Client.Get()
}

func (rc *RedisClient) Close() error {
	return rc.Client.Close()
}

// Lpush pushes one element to the head of the list
func (rc *RedisClient) Lpush(key, value string) (e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	_, e = client.Do("LPUSH", key, value)
	return e
}

// Ltrim keeps elements start..stop of the list
func (rc *RedisClient) Ltrim(key string, start, stop int64) (e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	_, e = client.Do("LTRIM", key, start, stop)
	return e
}

// LpushTrim pushes value and caps the list at maxLen in one MULTI block
func (rc *RedisClient) LpushTrim(key, value string, maxLen int64) (e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	if e = client.Send("MULTI"); e != nil {
		return e
	}
	if e = client.Send("LPUSH", key, value); e != nil {
		return e
	}
	if e = client.Send("LTRIM", key, 0, maxLen-1); e != nil {
		return e
	}
	_, e = client.Do("EXEC")
	return e
}

func (rc *RedisClient) Lrange(key string, start, stop int64) (result []string, e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	return redis.Strings(client.Do("LRANGE", key, start, stop))
}

// Hset sets a single field of a hash
func (rc *RedisClient) Hset(key, field, value string) (e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	_, e = client.Do("HSET", key, field, value)
	return e
}

// Hgetall reads a whole hash
func (rc *RedisClient) Hgetall(key string) (result map[string]string, e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	return redis.StringMap(client.Do("HGETALL", key))
}

// SetString stores value, with a ttl in seconds when expire > 0
func (rc *RedisClient) SetString(key, value string, expire int64) (e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	if expire > 0 {
		_, e = client.Do("SETEX", key, expire, value)
	} else {
		_, e = client.Do("SET", key, value)
	}
	return e
}

// GetString returns redis.ErrNil for a missing key
func (rc *RedisClient) GetString(key string) (str string, e error) {
	client := rc.Get()
	defer func() {
		_ = client.Close()
	}()

	return redis.String(client.Do("GET", key))
}
