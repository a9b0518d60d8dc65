package client

// context keys read by NewWssSocket
const (
	Id        = "Id"
	WssUrl    = "WssUrl"
	ProxyUrl  = "ProxyUrl"
	Timeout   = "Timeout"
	Keepalive = "keepalive"
	MsgLen    = "MsgLen"
	Insecure  = "Insecure"
)

const (
	StatusInit int32 = iota
	StatusOpened
	StatusClosed
)

// Transport owns one socket. Messages is closed once the socket is gone,
// after which Err reports why.
type Transport interface {
	Send(msg []byte) error
	Messages() <-chan []byte
	Close() error
	Err() error
}
