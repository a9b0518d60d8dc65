package exch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"okex-futures-go/adapter/text"
	"okex-futures-go/core/config"
)

func TestApiCtx(t *testing.T) {
	ctx := ApiCtx(&config.ApiUser{ApiSign: "host", Key: "k", Secret: "s", ExName: Okex, ExType: Futures})
	assert.Equal(t, "k", text.GetString(ctx, Key))
	assert.Equal(t, "s", text.GetString(ctx, Secret))
	assert.Equal(t, Okex, text.GetString(ctx, CtxExname))

	ctx = ConnCtx(ctx, "1")
	assert.Equal(t, "host_1", text.GetString(ctx, ConnSign))

	assert.Equal(t, "okex_2", text.GetString(ConnCtx(ApiCtx(nil), "2"), ConnSign))
}
