package exch

import (
	"context"

	"okex-futures-go/adapter/text"
	"okex-futures-go/core/config"
)

// ApiCtx packs the credentials of api into a context bag read back with the text getters
func ApiCtx(api *config.ApiUser) context.Context {
	ctx := context.Background()
	if api == nil {
		return ctx
	}
	ctx = context.WithValue(ctx, ApiSign, api.ApiSign)
	ctx = context.WithValue(ctx, CtxExname, api.ExName)
	ctx = context.WithValue(ctx, CtxExtype, api.ExType)
	ctx = context.WithValue(ctx, Key, api.Key)
	ctx = context.WithValue(ctx, Secret, api.Secret)
	return ctx
}

// ConnCtx marks ctx with the connection sign "<api_sign>_<id>" used as the log prefix of a client
func ConnCtx(ctx context.Context, id string) context.Context {
	sign := text.GetString(ctx, ApiSign)
	if sign == "" {
		sign = Okex
	}
	return context.WithValue(ctx, ConnSign, sign+"_"+id)
}
