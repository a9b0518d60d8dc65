package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	okex "okex-futures-go/exchange/okex/futures_wss"
)

type orderFunc func(ws *okex.FuturesClient, price, amount decimal.Decimal) (*okex.Future, error)

func parseDecimals(args []string) (price, amount decimal.Decimal, err error) {
	if price, err = decimal.NewFromString(args[0]); err != nil {
		return price, amount, fmt.Errorf("price %q: %w", args[0], err)
	}
	if amount, err = decimal.NewFromString(args[1]); err != nil {
		return price, amount, fmt.Errorf("amount %q: %w", args[1], err)
	}
	return price, amount, nil
}

func newShortcutCmd(o *options, use, short string, fn orderFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <price> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, amount, err := parseDecimals(args)
			if err != nil {
				return err
			}
			return o.withClient(cmd.Context(), true, func(ws *okex.FuturesClient) error {
				f, err := fn(ws, price, amount)
				return o.request(cmd, f, err)
			})
		},
	}
}

func newOrderCmd(o *options) *cobra.Command {
	p := okex.OrderParams{}
	var price, amount string
	cmd := &cobra.Command{
		Use:   "order",
		Short: "place an order with every field explicit",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if price != "" {
				if p.Price, err = decimal.NewFromString(price); err != nil {
					return err
				}
			}
			if p.Amount, err = decimal.NewFromString(amount); err != nil {
				return err
			}
			return o.withClient(cmd.Context(), true, func(ws *okex.FuturesClient) error {
				f, err := ws.Order(p)
				return o.request(cmd, f, err)
			})
		},
	}
	cmd.Flags().StringVar(&p.Symbol, "symbol", "", "e.g. btc_usd, defaults to the config")
	cmd.Flags().StringVar(&p.ContractType, "contract", "", "this_week, next_week or quarter")
	cmd.Flags().StringVar(&price, "price", "", "limit price")
	cmd.Flags().StringVar(&amount, "amount", "", "contracts")
	cmd.Flags().StringVar(&p.Type, "type", okex.OpenLong, "1 open long, 2 open short, 3 close long, 4 close short")
	cmd.Flags().StringVar(&p.MatchPrice, "match-price", okex.MatchPriceOff, "1 trades at the counterparty price")
	cmd.Flags().StringVar(&p.LeverRate, "lever", "", "10 or 20")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newCancelCmd(o *options) *cobra.Command {
	p := okex.CancelParams{}
	cmd := &cobra.Command{
		Use:   "cancel <order_id>",
		Short: "cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.OrderId = args[0]
			return o.withClient(cmd.Context(), true, func(ws *okex.FuturesClient) error {
				f, err := ws.Cancel(p)
				return o.request(cmd, f, err)
			})
		},
	}
	cmd.Flags().StringVar(&p.Symbol, "symbol", "", "e.g. btc_usd")
	cmd.Flags().StringVar(&p.ContractType, "contract", "", "this_week, next_week or quarter")
	return cmd
}

func newUserInfoCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "userinfo",
		Short: "print account information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClient(cmd.Context(), true, func(ws *okex.FuturesClient) error {
				return o.request(cmd, ws.GetUserInfo(), nil)
			})
		},
	}
}

func newOrderInfoCmd(o *options) *cobra.Command {
	p := okex.OrderInfoParams{}
	cmd := &cobra.Command{
		Use:   "orderinfo <order_id>",
		Short: "print order information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.OrderId = args[0]
			return o.withClient(cmd.Context(), true, func(ws *okex.FuturesClient) error {
				f, err := ws.GetOrderInfo(p)
				return o.request(cmd, f, err)
			})
		},
	}
	cmd.Flags().StringVar(&p.Symbol, "symbol", "", "e.g. btc_usd")
	cmd.Flags().StringVar(&p.ContractType, "contract", "", "this_week, next_week or quarter")
	cmd.Flags().StringVar(&p.Status, "status", "1", "1 unfilled, 2 filled")
	cmd.Flags().IntVar(&p.CurrentPage, "page", 1, "page number")
	cmd.Flags().IntVar(&p.PageLength, "page-length", 50, "orders per page, at most 50")
	return cmd
}
