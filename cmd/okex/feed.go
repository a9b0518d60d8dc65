package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"okex-futures-go/adapter/redis"
	"okex-futures-go/core/feed"
)

func newFeedCmd(o *options) *cobra.Command {
	var n int64
	cmd := &cobra.Command{
		Use:   "feed [channel]",
		Short: "read back what watch --redis stored: the channel list, or the latest entries of one channel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg.Redis == nil {
				return fmt.Errorf("feed needs a redis section in %s", o.configFile)
			}
			rc := redis.NewRedisClient(o.cfg.Redis)
			defer rc.Close()
			sink := feed.NewRedisSink(rc, feed.DefaultPrefix, o.cfg.Redis.ListLen)
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				entries, err := sink.Latest(args[0], n)
				if err != nil {
					return err
				}
				for _, e := range entries {
					fmt.Fprintln(w, e)
				}
				return nil
			}
			channels, err := sink.Channels()
			if err != nil {
				return err
			}
			names := make([]string, 0, len(channels))
			for ch := range channels {
				names = append(names, ch)
			}
			sort.Strings(names)
			for _, ch := range names {
				fmt.Fprintf(w, "%s %d\n", ch, channels[ch])
			}
			return nil
		},
	}
	cmd.Flags().Int64VarP(&n, "num", "n", 10, "entries to print")
	return cmd
}
