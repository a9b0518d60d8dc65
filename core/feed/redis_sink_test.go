package feed

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okex-futures-go/adapter/redis"
	"okex-futures-go/core/config"
)

func TestRedisSink(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewRedisClient(&config.RedisUser{Host: mr.Host(), Port: mr.Port()})
	defer rc.Close()

	sink := NewRedisSink(rc, "", 2)
	channel := "ok_sub_futureusd_btc_depth_this_week_5"
	for _, p := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		require.NoError(t, sink.Push(channel, []byte(p)))
	}

	got, err := sink.Latest(channel, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"n":3}`, `{"n":2}`}, got)
	assert.Equal(t, "okex:"+channel, sink.Key(channel))

	channels, err := sink.Channels()
	require.NoError(t, err)
	require.Contains(t, channels, channel)
	assert.Greater(t, channels[channel], int64(0))
}
