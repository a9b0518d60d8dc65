package futures_wss

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultSymbol    = "btc_usd"
	DefaultLeverRate = "10"
)

type tradeParams struct {
	symbol       string
	contractType string
	leverRate    string
}

func defaultTradeParams() tradeParams {
	return tradeParams{symbol: DefaultSymbol, contractType: ThisWeek, leverRate: DefaultLeverRate}
}

type OrderParams struct {
	Symbol       string
	ContractType string
	Price        decimal.Decimal
	Amount       decimal.Decimal
	// OpenLong, OpenShort, CloseLong or CloseShort
	Type string
	// MatchPriceOn trades at the counterparty price and ignores Price
	MatchPrice string
	LeverRate  string
}

type CancelParams struct {
	Symbol       string
	OrderId      string
	ContractType string
}

type OrderInfoParams struct {
	Symbol       string
	OrderId      string
	ContractType string
	// 1 unfilled, 2 filled
	Status      string
	CurrentPage int
	PageLength  int
}

// SetParams sets the symbol, contract type and lever rate used when an order leaves them empty
func (ws *FuturesClient) SetParams(symbol, contractType, leverRate string) {
	ws.pmu.Lock()
	defer ws.pmu.Unlock()
	if symbol != "" {
		ws.params.symbol = symbol
	}
	if contractType != "" {
		ws.params.contractType = contractType
	}
	if leverRate != "" {
		ws.params.leverRate = leverRate
	}
}

func (ws *FuturesClient) tradeParams() tradeParams {
	ws.pmu.RLock()
	defer ws.pmu.RUnlock()
	return ws.params
}

// Order places an order on ok_futureusd_trade. Orders are sent one at a time.
func (ws *FuturesClient) Order(p OrderParams) (*Future, error) {
	def := ws.tradeParams()
	if p.Symbol == "" {
		p.Symbol = def.symbol
	}
	if p.ContractType == "" {
		p.ContractType = def.contractType
	}
	if p.LeverRate == "" {
		p.LeverRate = def.leverRate
	}
	if p.MatchPrice == "" {
		p.MatchPrice = MatchPriceOff
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	req := &ClientRequest{
		Event:   EventAddChannel,
		Channel: ChannelTrade,
		Parameters: map[string]string{
			"symbol":        p.Symbol,
			"contract_type": p.ContractType,
			"price":         p.Price.String(),
			"amount":        p.Amount.String(),
			"type":          p.Type,
			"match_price":   p.MatchPrice,
			"lever_rate":    p.LeverRate,
		},
	}
	return ws.correlator.SendToChannel(ChannelTrade, req), nil
}

func (p *OrderParams) validate() error {
	switch p.Type {
	case OpenLong, OpenShort, CloseLong, CloseShort:
	default:
		return fmt.Errorf("%w: order type %q", ErrInvalidParameter, p.Type)
	}
	if p.MatchPrice != MatchPriceOff && p.MatchPrice != MatchPriceOn {
		return fmt.Errorf("%w: match_price %q", ErrInvalidParameter, p.MatchPrice)
	}
	if !contains(ContractTypes, p.ContractType) {
		return fmt.Errorf("%w: contract type %q", ErrInvalidParameter, p.ContractType)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: amount %s", ErrInvalidParameter, p.Amount)
	}
	if p.MatchPrice == MatchPriceOff && !p.Price.IsPositive() {
		return fmt.Errorf("%w: price %s", ErrInvalidParameter, p.Price)
	}
	return nil
}

func (ws *FuturesClient) limitOrder(orderType string, price, amount decimal.Decimal) (*Future, error) {
	return ws.Order(OrderParams{Price: price, Amount: amount, Type: orderType, MatchPrice: MatchPriceOff})
}

// OpenBuy opens a long position at price
func (ws *FuturesClient) OpenBuy(price, amount decimal.Decimal) (*Future, error) {
	return ws.limitOrder(OpenLong, price, amount)
}

// OpenSell opens a short position at price
func (ws *FuturesClient) OpenSell(price, amount decimal.Decimal) (*Future, error) {
	return ws.limitOrder(OpenShort, price, amount)
}

func (ws *FuturesClient) CloseBuy(price, amount decimal.Decimal) (*Future, error) {
	return ws.limitOrder(CloseLong, price, amount)
}

func (ws *FuturesClient) CloseSell(price, amount decimal.Decimal) (*Future, error) {
	return ws.limitOrder(CloseShort, price, amount)
}

func (ws *FuturesClient) Cancel(p CancelParams) (*Future, error) {
	def := ws.tradeParams()
	if p.Symbol == "" {
		p.Symbol = def.symbol
	}
	if p.ContractType == "" {
		p.ContractType = def.contractType
	}
	if p.OrderId == "" {
		return nil, fmt.Errorf("%w: order id required", ErrInvalidParameter)
	}
	req := &ClientRequest{
		Event:   EventAddChannel,
		Channel: ChannelCancelOrder,
		Parameters: map[string]string{
			"symbol":        p.Symbol,
			"order_id":      p.OrderId,
			"contract_type": p.ContractType,
		},
	}
	return ws.correlator.SendToChannel(ChannelCancelOrder, req), nil
}

func (ws *FuturesClient) GetUserInfo() *Future {
	req := &ClientRequest{Event: EventAddChannel, Channel: ChannelUserInfo, Parameters: map[string]string{}}
	return ws.correlator.SendToChannel(ChannelUserInfo, req)
}

func (ws *FuturesClient) GetOrderInfo(p OrderInfoParams) (*Future, error) {
	def := ws.tradeParams()
	if p.Symbol == "" {
		p.Symbol = def.symbol
	}
	if p.ContractType == "" {
		p.ContractType = def.contractType
	}
	if p.CurrentPage <= 0 {
		p.CurrentPage = 1
	}
	if p.PageLength <= 0 {
		p.PageLength = 1
	}
	if p.OrderId == "" {
		return nil, fmt.Errorf("%w: order id required", ErrInvalidParameter)
	}
	if p.PageLength > 50 {
		return nil, fmt.Errorf("%w: page length %d above 50", ErrInvalidParameter, p.PageLength)
	}
	req := &ClientRequest{
		Event:   EventAddChannel,
		Channel: ChannelOrderInfo,
		Parameters: map[string]string{
			"symbol":        p.Symbol,
			"order_id":      p.OrderId,
			"contract_type": p.ContractType,
			"status":        p.Status,
			"current_page":  fmt.Sprint(p.CurrentPage),
			"page_length":   fmt.Sprint(p.PageLength),
		},
	}
	return ws.correlator.SendToChannel(ChannelOrderInfo, req), nil
}
