package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okex-futures-go/core/config"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := NewRedisClient(&config.RedisUser{Host: mr.Host(), Port: mr.Port()})
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestLpushTrim(t *testing.T) {
	rc, _ := newTestClient(t)
	for _, v := range []string{"a", "b", "c", "d"} {
		require.NoError(t, rc.LpushTrim("feed", v, 3))
	}
	got, err := rc.Lrange("feed", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b"}, got)

	require.NoError(t, rc.Lpush("feed", "e"))
	require.NoError(t, rc.Ltrim("feed", 0, 0))
	got, err = rc.Lrange("feed", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, got)
}

func TestHashAndString(t *testing.T) {
	rc, mr := newTestClient(t)
	require.NoError(t, rc.Hset("h", "f1", "1"))
	require.NoError(t, rc.Hset("h", "f2", "2"))
	all, err := rc.Hgetall("h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"f1": "1", "f2": "2"}, all)

	require.NoError(t, rc.SetString("k", "v", 10))
	v, err := rc.GetString("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	assert.True(t, mr.TTL("k") > 0)

	_, err = rc.GetString("missing")
	assert.ErrorIs(t, err, redis.ErrNil)
}
