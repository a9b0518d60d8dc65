package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"okex-futures-go/core/config"
	"okex-futures-go/core/exch"
	"okex-futures-go/core/log"
	okex "okex-futures-go/exchange/okex/futures_wss"
)

type options struct {
	configFile string
	logLevel   string
	timeout    time.Duration
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "okex",
		Short:        "OKEx futures websocket client",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", config.DefaultConfigFile, "config file, .yaml or .json")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level mask, e.g. INFO|WARN|ERROR")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "reply timeout")

	root.AddCommand(
		newLoginCmd(opts),
		newWatchCmd(opts),
		newFeedCmd(opts),
		newOrderCmd(opts),
		newShortcutCmd(opts, "open-buy", "open a long position", (*okex.FuturesClient).OpenBuy),
		newShortcutCmd(opts, "open-sell", "open a short position", (*okex.FuturesClient).OpenSell),
		newShortcutCmd(opts, "close-buy", "close a long position", (*okex.FuturesClient).CloseBuy),
		newShortcutCmd(opts, "close-sell", "close a short position", (*okex.FuturesClient).CloseSell),
		newCancelCmd(opts),
		newUserInfoCmd(opts),
		newOrderInfoCmd(opts),
	)
	return root
}

// load reads the config file; a missing default file falls back to env credentials
func (o *options) load() error {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || o.configFile != config.DefaultConfigFile {
			return err
		}
		cfg = &config.Config{}
		cfg.Api.Key = os.Getenv(config.EnvApiKey)
		cfg.Api.Secret = os.Getenv(config.EnvSecret)
		cfg.Api.ApiSign = config.GetServerHost()
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	log.ConfigLog(cfg.Log)
	o.cfg = cfg
	return nil
}

// withClient connects, optionally logs in, runs fn and closes the client
func (o *options) withClient(ctx context.Context, login bool, fn func(ws *okex.FuturesClient) error) error {
	cfg := o.cfg
	cfg.Api.ExName, cfg.Api.ExType = exch.Okex, exch.Futures
	wctx := exch.ConnCtx(exch.ApiCtx(&cfg.Api), "cli")
	ws := okex.NewFuturesClient(wctx, okex.NewConfig(cfg.Okex))
	defer ws.Close()
	ws.SetParams(cfg.Okex.Symbol, cfg.Okex.ContractType, cfg.Okex.LeverRate)

	if err := ws.Connect(); err != nil {
		return err
	}
	if login {
		resp, err := o.wait(ctx, ws.Login())
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		if !ws.IsLogined() {
			return fmt.Errorf("login declined: code %d", firstCode(resp))
		}
		log.Infoln(log.Cli, "okex login ok")
	}
	return fn(ws)
}

func (o *options) wait(ctx context.Context, f *okex.Future) ([]okex.ServerResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return f.Wait(ctx)
}

// request waits for the reply of f and prints it
func (o *options) request(cmd *cobra.Command, f *okex.Future, err error) error {
	if err != nil {
		return err
	}
	resp, err := o.wait(cmd.Context(), f)
	if err != nil {
		return err
	}
	printResponse(cmd.OutOrStdout(), resp)
	return nil
}

func printResponse(w io.Writer, resp []okex.ServerResponse) {
	for _, r := range resp {
		if r.Declined() {
			fmt.Fprintf(w, "%s declined code=%d %s\n", r.Channel, r.Code(), r.Data)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", r.Channel, r.Data)
	}
}

func firstCode(resp []okex.ServerResponse) int64 {
	if len(resp) == 0 {
		return 0
	}
	return resp[0].Code()
}

func newLoginCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "authenticate and print the server reply",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withClient(cmd.Context(), false, func(ws *okex.FuturesClient) error {
				return o.request(cmd, ws.Login(), nil)
			})
		},
	}
}
