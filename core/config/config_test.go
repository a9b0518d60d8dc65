package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfigYAML(t *testing.T) {
	p := writeFile(t, "okex.yaml", `
api:
  key: k1
  secret: s1
  api_sign: host-a
okex:
  wss_url: wss://example/ws
  ping_interval: 5
  missed_pongs: 2
  symbol: btc_usd
redis:
  host: 127.0.0.1
  port: "6379"
  list_len: 50
log:
  level: INFO|ERROR
`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "k1", cfg.Api.Key)
	assert.Equal(t, "host-a", cfg.Api.ApiSign)
	assert.Equal(t, "wss://example/ws", cfg.Okex.WssUrl)
	assert.Equal(t, int64(5), cfg.Okex.PingInterval)
	assert.Equal(t, 2, cfg.Okex.MissedPongs)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, int64(50), cfg.Redis.ListLen)
	assert.Equal(t, "INFO|ERROR", cfg.Log.Level)
}

func TestLoadConfigJSONCredentialsFromEnv(t *testing.T) {
	t.Setenv(EnvApiKey, "env-key")
	t.Setenv(EnvSecret, "env-secret")
	p := writeFile(t, "okex.json", `{"okex": {"symbol": "ltc_usd"}}`)

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Api.Key)
	assert.Equal(t, "env-secret", cfg.Api.Secret)
	assert.Equal(t, "ltc_usd", cfg.Okex.Symbol)
	assert.Nil(t, cfg.Redis)
}

func TestLoadJSONSyntaxErrorLine(t *testing.T) {
	p := writeFile(t, "bad.json", "{\n\"okex\": {\n\"symbol\": ,\n}}")
	err := LoadJSON(p, &Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json:3")
}

func TestLoadConfigUnknownExtension(t *testing.T) {
	p := writeFile(t, "okex.toml", "")
	_, err := LoadConfig(p)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
