package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/chute-client/pkg/asset"
	"github.com/Sternrassler/chute-client/pkg/pagination"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		interval time.Duration
		ticks    int
	)

	cmd := &cobra.Command{
		Use:   "watch <album>",
		Short: "Print new assets of an album as they arrive",
		Long: `watch loads the newest assets of an album and then polls for assets newer
than the first one held, printing each batch. It runs until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive, got %s", interval)
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			assets, err := a.assets.Query(ctx, pagination.Params{"album": args[0]})
			if err != nil {
				return err
			}
			if err := assets.Wait(ctx); err != nil {
				return err
			}
			printAssets(out, assets.Items())

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for n := 0; ticks <= 0 || n < ticks; n++ {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}

				var page *pagination.Page[*asset.Asset]
				if assets.Len() == 0 {
					page, err = assets.FetchNext(ctx)
				} else {
					page, err = assets.FetchPrevious(ctx)
				}
				if err != nil {
					if errors.Is(err, ctx.Err()) {
						return nil
					}
					a.logger.Warn().Err(err).Msg("Poll failed")
					continue
				}
				if len(page.Items) > 0 {
					fmt.Fprintf(out, "\n%d new assets\n", len(page.Items))
					printAssets(out, page.Items)
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "poll interval")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "stop after this many polls (0 runs until interrupted)")

	return cmd
}
