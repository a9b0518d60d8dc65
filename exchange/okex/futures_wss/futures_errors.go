package futures_wss

import "errors"

var (
	ErrInvalidParameter        = errors.New("invalid parameter")
	ErrUnsupportedSubscription = errors.New("unsupported subscription")
	ErrMalformedFrame          = errors.New("malformed frame")
	ErrNotConnected            = errors.New("not connected")
	ErrConnectionLost          = errors.New("connection lost")
	ErrClosed                  = errors.New("client closed")
)
