package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/antihax/optional"
	"github.com/spf13/cobra"

	"okex-futures-go/adapter/notice"
	"okex-futures-go/adapter/redis"
	"okex-futures-go/core/feed"
	"okex-futures-go/core/log"
	okex "okex-futures-go/exchange/okex/futures_wss"
)

type watchFlags struct {
	kind     string
	coin     string
	contract string
	period   string
	depth    int32
	login    bool
	toRedis  bool
	quiet    bool
}

func newWatchCmd(o *options) *cobra.Command {
	f := &watchFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "subscribe to a feed and print every entry until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt := okex.SubscriptionOption{
				Type:         okex.SubscriptionType(f.kind),
				Coin:         f.coin,
				ContractType: f.contract,
			}
			if cmd.Flags().Changed("period") {
				opt.Period = optional.NewString(f.period)
			}
			if cmd.Flags().Changed("depth") {
				opt.Depth = optional.NewInt32(f.depth)
			}
			var show func(okex.ServerResponse)
			if !f.quiet {
				show = printer(cmd.OutOrStdout())
			}
			opt.Handler = show
			if f.toRedis {
				if o.cfg.Redis == nil {
					return fmt.Errorf("--redis needs a redis section in %s", o.configFile)
				}
				rc := redis.NewRedisClient(o.cfg.Redis)
				defer rc.Close()
				sink := feed.NewRedisSink(rc, feed.DefaultPrefix, o.cfg.Redis.ListLen)
				opt.Handler = okex.SinkHandler(sink, show)
			}

			var notifier *notice.Notifier
			if o.cfg.Notice.WebhookUrl != "" {
				notifier = notice.NewNotifier(o.cfg.Notice.WebhookUrl, "[okex "+o.cfg.Api.ApiSign+"]")
			}

			return o.withClient(cmd.Context(), f.login, func(ws *okex.FuturesClient) error {
				sub, err := ws.Subscribe(opt)
				if err != nil {
					return err
				}
				log.Infoln(log.Cli, "watching", sub.Channel())
				for {
					select {
					case <-cmd.Context().Done():
						ws.Unsubscribe(sub.Id)
						sec, minute, hour := ws.Requests()
						log.Infof(log.Cli, "frames sent: %d this second, %d this minute, %d this hour", sec, minute, hour)
						return nil
					case err := <-ws.Errors():
						log.Warnln(log.Cli, err)
						if notifier != nil {
							if nerr := notifier.Send(cmd.Context(), err.Error()); nerr != nil {
								log.Warnln(log.Cli, "notice error", nerr)
							}
						}
					}
				}
			})
		},
	}
	cmd.Flags().StringVarP(&f.kind, "type", "t", string(okex.SubTicker), "ticker, kline, depth, depth_z, trade, index, trades, userinfo or positions")
	cmd.Flags().StringVar(&f.coin, "coin", okex.CoinBtc, "coin, e.g. btc, ltc, eth, etc, bch or eos")
	cmd.Flags().StringVar(&f.contract, "contract", okex.ThisWeek, "this_week, next_week or quarter")
	cmd.Flags().StringVar(&f.period, "period", "", "kline period, e.g. 1min")
	cmd.Flags().Int32Var(&f.depth, "depth", 0, "depth_z size: 5, 10 or 20")
	cmd.Flags().BoolVar(&f.login, "login", false, "log in first, needed by trades, userinfo and positions")
	cmd.Flags().BoolVar(&f.toRedis, "redis", false, "push entries to the configured redis")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "do not print entries")
	return cmd
}

func printer(w io.Writer) func(okex.ServerResponse) {
	var mu sync.Mutex
	return func(r okex.ServerResponse) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "%s %s\n", r.Channel, r.Data)
	}
}
