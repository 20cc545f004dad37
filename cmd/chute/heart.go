package main

import (
	"fmt"

	"github.com/Sternrassler/chute-client/pkg/asset"
	"github.com/spf13/cobra"
)

func newHeartCmd(a *app) *cobra.Command {
	var remove, status bool

	cmd := &cobra.Command{
		Use:   "heart <album> <asset>",
		Short: "Toggle the heart on an asset",
		Long: `heart toggles the heart on an asset: a hearted asset is unhearted and any
other asset is hearted. Use --remove to only unheart and --status to only
print the local state.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			as, err := a.fetchAsset(cmd, args[0], args[1])
			if err != nil {
				return err
			}

			var state asset.State
			switch {
			case status:
				state, err = a.assets.State(ctx, as)
			case remove:
				err = a.assets.Unheart(ctx, as)
				state = asset.StateNotLiked
			default:
				state, err = a.assets.ToggleHeart(ctx, as)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s: %s (%d hearts)\n", as.Album, as.Shortcut, state, as.Hearts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "unheart only")
	cmd.Flags().BoolVar(&status, "status", false, "print the local heart state without changing it")
	cmd.MarkFlagsMutuallyExclusive("remove", "status")

	return cmd
}
