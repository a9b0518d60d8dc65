package futures_wss

import (
	"fmt"

	"github.com/antihax/optional"
	simplejson "github.com/bitly/go-simplejson"
	json "github.com/goccy/go-json"

	"okex-futures-go/adapter/convert"
)

const (
	OkexFuturesU = "okex"
	UsdWssUrl    = "wss://real.okex.com:10440/websocket/okexapi"
)

const (
	EventAddChannel    = "addChannel"
	EventRemoveChannel = "removeChannel"
	EventLogin         = "login"
	EventPing          = "ping"
	EventPong          = "pong"

	ChannelPrefix      = "ok_sub_futureusd"
	ChannelLogin       = "login"
	ChannelTrade       = "ok_futureusd_trade"
	ChannelCancelOrder = "ok_futureusd_cancel_order"
	ChannelUserInfo    = "ok_futureusd_userinfo"
	ChannelOrderInfo   = "ok_futureusd_orderinfo"

	// pushed by the server after login without a subscribe request
	ChannelSubTrades    = ChannelPrefix + "_trades"
	ChannelSubUserInfo  = ChannelPrefix + "_userinfo"
	ChannelSubPositions = ChannelPrefix + "_positions"
)

// intervals in seconds
const (
	WssTimeout             int64 = 10
	PingInterval           int64 = 30
	ReconnectWait          int64 = 30
	HeartbeatReconnectWait int64 = 10
	MissedPongs                  = 3
	DialRetries            uint  = 5
)

type SubscriptionType string

const (
	SubTicker    SubscriptionType = "ticker"
	SubKline     SubscriptionType = "kline"
	SubDepth     SubscriptionType = "depth"
	SubDepthZ    SubscriptionType = "depth_z"
	SubTrade     SubscriptionType = "trade"
	SubIndex     SubscriptionType = "index"
	SubTrades    SubscriptionType = "trades"
	SubUserInfo  SubscriptionType = "userinfo"
	SubPositions SubscriptionType = "positions"
)

const (
	CoinBtc = "btc"
	CoinLtc = "ltc"
	CoinEth = "eth"
	CoinEtc = "etc"
	CoinBch = "bch"

	ThisWeek = "this_week"
	NextWeek = "next_week"
	Quarter  = "quarter"
)

// order type, 1:open long 2:open short 3:close long 4:close short
const (
	OpenLong   = "1"
	OpenShort  = "2"
	CloseLong  = "3"
	CloseShort = "4"

	MatchPriceOff = "0"
	MatchPriceOn  = "1"
)

var (
	ContractTypes = []string{ThisWeek, NextWeek, Quarter}
	Periods       = []string{"1min", "3min", "5min", "15min", "30min", "1hour", "2hour",
		"4hour", "6hour", "12hour", "day", "3day", "week"}
	Depths = []int32{5, 10, 20}
)

// ClientRequest is every outbound frame
type ClientRequest struct {
	Event      string            `json:"event"`
	Channel    string            `json:"channel,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Binary     int               `json:"binary,omitempty"`
}

func (req *ClientRequest) Marshal() ([]byte, error) {
	return json.Marshal(req)
}

// ServerResponse is one entry of an inbound channel frame
type ServerResponse struct {
	Channel   string          `json:"channel"`
	Success   json.RawMessage `json:"success,omitempty"`
	ErrorCode json.RawMessage `json:"errorcode,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Result returns the data payload, empty when missing or unparsable
func (r *ServerResponse) Result() *simplejson.Json {
	if len(r.Data) == 0 {
		return simplejson.New()
	}
	js, err := simplejson.NewJson(r.Data)
	if err != nil {
		return simplejson.New()
	}
	return js
}

// Code returns errorcode, or data.error_code, or 0
func (r *ServerResponse) Code() int64 {
	if v := rawValue(r.ErrorCode); v != nil {
		return convert.GetInt64(v)
	}
	if v, ok := r.Result().CheckGet("error_code"); ok {
		return convert.GetInt64(v.Interface())
	}
	return 0
}

// Declined reports a server refusal carried in an otherwise normal reply:
// success:false, a non zero errorcode or data.result false.
func (r *ServerResponse) Declined() bool {
	if v := rawValue(r.Success); v != nil && !convert.GetBool(v) {
		return true
	}
	if r.Code() != 0 {
		return true
	}
	if v, ok := r.Result().CheckGet("result"); ok {
		return !convert.GetBool(v.Interface())
	}
	return false
}

func rawValue(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// SubscriptionOption describes one market data or account feed
type SubscriptionOption struct {
	// Id is generated when empty
	Id           string
	Type         SubscriptionType
	Coin         string
	ContractType string
	Period       optional.String
	Depth        optional.Int32
	Handler      func(ServerResponse)
}

// channel builds the channel name. need is false for feeds pushed after login.
func (opt *SubscriptionOption) channel() (ch string, need bool, err error) {
	switch opt.Type {
	case SubTrades:
		return ChannelSubTrades, false, nil
	case SubUserInfo:
		return ChannelSubUserInfo, false, nil
	case SubPositions:
		return ChannelSubPositions, false, nil
	case SubTicker, SubKline, SubDepth, SubDepthZ, SubTrade, SubIndex:
	default:
		return "", false, fmt.Errorf("%w: %q", ErrUnsupportedSubscription, opt.Type)
	}
	if opt.Coin == "" {
		return "", false, fmt.Errorf("%w: missing coin", ErrInvalidParameter)
	}
	if opt.Type == SubIndex {
		return fmt.Sprintf("%s_%s_index", ChannelPrefix, opt.Coin), true, nil
	}
	if !contains(ContractTypes, opt.ContractType) {
		return "", false, fmt.Errorf("%w: contract type %q", ErrInvalidParameter, opt.ContractType)
	}
	switch opt.Type {
	case SubTicker:
		ch = fmt.Sprintf("%s_%s_ticker_%s", ChannelPrefix, opt.Coin, opt.ContractType)
	case SubTrade:
		ch = fmt.Sprintf("%s_%s_trade_%s", ChannelPrefix, opt.Coin, opt.ContractType)
	case SubDepth:
		ch = fmt.Sprintf("%s_%s_depth_%s", ChannelPrefix, opt.Coin, opt.ContractType)
	case SubKline:
		if !opt.Period.IsSet() {
			return "", false, fmt.Errorf("%w: kline needs a period", ErrInvalidParameter)
		}
		if !contains(Periods, opt.Period.Value()) {
			return "", false, fmt.Errorf("%w: period %q", ErrInvalidParameter, opt.Period.Value())
		}
		ch = fmt.Sprintf("%s_%s_kline_%s_%s", ChannelPrefix, opt.Coin, opt.ContractType, opt.Period.Value())
	case SubDepthZ:
		if !opt.Depth.IsSet() {
			return "", false, fmt.Errorf("%w: depth_z needs a depth", ErrInvalidParameter)
		}
		if !containsInt32(Depths, opt.Depth.Value()) {
			return "", false, fmt.Errorf("%w: depth %d", ErrInvalidParameter, opt.Depth.Value())
		}
		ch = fmt.Sprintf("%s_%s_depth_%s_%d", ChannelPrefix, opt.Coin, opt.ContractType, opt.Depth.Value())
	}
	return ch, true, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsInt32(list []int32, v int32) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
