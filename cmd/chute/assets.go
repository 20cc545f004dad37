package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Sternrassler/chute-client/pkg/asset"
	"github.com/Sternrassler/chute-client/pkg/pagination"
	"github.com/spf13/cobra"
)

func newAssetsCmd(a *app) *cobra.Command {
	var (
		perPage int
		page    int
		sort    string
		pages   int
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "assets <album>",
		Short: "List the assets of an album",
		Example: `  chute assets aus6kwrg --per-page 3 --pages 2
  chute assets aus6kwrg --sort hearts --page 2
  chute assets aus6kwrg --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			params := pagination.Params{"album": args[0]}
			if perPage > 0 {
				params[pagination.ParamPerPage] = strconv.Itoa(perPage)
			}
			if page > 0 {
				params[pagination.ParamPage] = strconv.Itoa(page)
			}
			if sort != "" {
				params[pagination.ParamSort] = sort
			}

			assets, err := a.assets.Query(ctx, params)
			if err != nil {
				return err
			}
			if err := assets.Wait(ctx); err != nil {
				return err
			}

			maxPages := pages - 1
			if all {
				maxPages = 0
			}
			if all || maxPages > 0 {
				if _, err := pagination.Drain(ctx, assets, maxPages); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			printAssets(out, assets.Items())
			fmt.Fprintf(out, "\n%d assets, mode %s, more: %s\n",
				assets.Len(), assets.Mode(), assets.More())
			return nil
		},
	}

	cmd.Flags().IntVar(&perPage, "per-page", 0, "assets per page (API default 5)")
	cmd.Flags().IntVar(&page, "page", 0, "start page, only used with a non-natural sort")
	cmd.Flags().StringVar(&sort, "sort", "", "sort key; id and time page by cursor, others by page number")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")

	return cmd
}

func printAssets(w io.Writer, assets []*asset.Asset) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SHORTCUT\tCHUTE ID\tTYPE\tHEARTS\tCAPTION")
	for _, as := range assets {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%s\n", as.Shortcut, as.ChuteAssetID, as.Type, as.Hearts, as.Caption)
	}
	tw.Flush()
}
