package futures_wss

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func TestSign(t *testing.T) {
	s := NewSigner("key", "s")
	assert.Equal(t, md5Upper("a=1&b=2&secret_key=s"), s.Sign(map[string]string{"b": "2", "a": "1"}))
}

func TestSignEmpty(t *testing.T) {
	s := NewSigner("key", "s")
	assert.Equal(t, md5Upper("secret_key=s"), s.Sign(map[string]string{}))
}

func TestSignFormEncoding(t *testing.T) {
	s := NewSigner("key", "se cret")
	params := map[string]string{"x": "a b*c~d&e"}
	assert.Equal(t, md5Upper("x=a+b*c%7Ed%26e&secret_key=se+cret"), s.Sign(params))
}

func TestSignParams(t *testing.T) {
	s := NewSigner("k1", "s")
	params := map[string]string{"symbol": "btc_usd"}
	signed := s.SignParams(params)

	assert.Equal(t, "k1", signed["api_key"])
	assert.Equal(t, md5Upper("api_key=k1&symbol=btc_usd&secret_key=s"), signed["sign"])
	assert.NotContains(t, params, "sign")
	assert.True(t, s.Enabled())
	assert.False(t, NewSigner("", "").Enabled())
}
