package exch

const (
	Okex    = "okex"
	Futures = "futures"
)

// context keys
const (
	Key    = "Key"
	Secret = "Secret"

	CtxExname = "CtxExname"
	CtxExtype = "CtxExtype"

	ApiSign  = "ApiSign"
	ConnSign = "ConnSign"
)

const (
	WSChannelLen  int64 = 6000
	MsgChannelLen int64 = 2000
)
