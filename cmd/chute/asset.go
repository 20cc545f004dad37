package main

import (
	"encoding/json"

	"github.com/Sternrassler/chute-client/pkg/asset"
	"github.com/Sternrassler/chute-client/pkg/pagination"
	"github.com/spf13/cobra"
)

func newAssetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "asset <album> <asset>",
		Short: "Show one asset as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			as, err := a.fetchAsset(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			hearted, err := a.assets.Hearted(ctx, as)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				*asset.Asset
				Hearted bool `json:"hearted"`
			}{as, hearted})
		},
	}
}

func (a *app) fetchAsset(cmd *cobra.Command, album, shortcut string) (*asset.Asset, error) {
	h, err := a.assets.Get(cmd.Context(), pagination.Params{"album": album, "id": shortcut})
	if err != nil {
		return nil, err
	}
	return h.Wait(cmd.Context())
}
