package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okex-futures-go/adapter/redis"
	"okex-futures-go/core/config"
	"okex-futures-go/core/feed"
	okex "okex-futures-go/exchange/okex/futures_wss"
)

func TestCommandTree(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"login", "watch", "feed", "order", "open-buy", "open-sell", "close-buy", "close-sell", "cancel", "userinfo", "orderinfo"} {
		assert.Contains(t, names, want)
	}
}

func TestParseDecimals(t *testing.T) {
	price, amount, err := parseDecimals([]string{"100.25", "3"})
	require.NoError(t, err)
	assert.Equal(t, "100.25", price.String())
	assert.Equal(t, "3", amount.String())

	_, _, err = parseDecimals([]string{"x", "3"})
	assert.Error(t, err)
}

func TestPrintResponse(t *testing.T) {
	var b bytes.Buffer
	printResponse(&b, []okex.ServerResponse{
		{Channel: okex.ChannelTrade, Data: []byte(`{"result":true,"order_id":1}`)},
		{Channel: okex.ChannelTrade, ErrorCode: []byte(`20007`)},
	})
	assert.Equal(t, "ok_futureusd_trade {\"result\":true,\"order_id\":1}\nok_futureusd_trade declined code=20007 \n", b.String())
}

func TestLoadOptions(t *testing.T) {
	p := filepath.Join(t.TempDir(), "okex.yaml")
	require.NoError(t, os.WriteFile(p, []byte("api:\n  key: k\nokex:\n  symbol: eth_usd\n"), 0o644))

	o := &options{configFile: p, logLevel: "ERROR"}
	require.NoError(t, o.load())
	assert.Equal(t, "k", o.cfg.Api.Key)
	assert.Equal(t, "eth_usd", o.cfg.Okex.Symbol)
	assert.Equal(t, "ERROR", o.cfg.Log.Level)

	o = &options{configFile: filepath.Join(t.TempDir(), "missing.yaml")}
	assert.Error(t, o.load())
}

func TestRunCommandWithoutServer(t *testing.T) {
	p := filepath.Join(t.TempDir(), "okex.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"okex":{"wss_url":"ws://127.0.0.1:1/none","dial_retries":1}}`), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"--config", p, "userinfo"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestFeedCommand(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewRedisClient(&config.RedisUser{Host: mr.Host(), Port: mr.Port()})
	defer rc.Close()
	sink := feed.NewRedisSink(rc, feed.DefaultPrefix, 0)
	channel := "ok_sub_futureusd_btc_ticker_this_week"
	require.NoError(t, sink.Push(channel, []byte(`{"last":1}`)))
	require.NoError(t, sink.Push(channel, []byte(`{"last":2}`)))

	p := filepath.Join(t.TempDir(), "okex.yaml")
	cfg := "redis:\n  host: " + mr.Host() + "\n  port: \"" + mr.Port() + "\"\n"
	require.NoError(t, os.WriteFile(p, []byte(cfg), 0o644))

	run := func(args ...string) string {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetArgs(append([]string{"--config", p, "feed"}, args...))
		root.SetOut(&out)
		root.SetErr(&bytes.Buffer{})
		require.NoError(t, root.ExecuteContext(context.Background()))
		return out.String()
	}

	assert.Equal(t, "{\"last\":2}\n", run(channel, "-n", "1"))
	assert.Contains(t, run(), channel+" ")
}
