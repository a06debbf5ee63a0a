package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/sitesearch/registry"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		limit    int
		cursor   string
		category string
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Rank catalog entries for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			disc, err := a.discovery()
			if err != nil {
				return err
			}
			defer disc.Close()

			site := registry.Site{Discovery: disc, Logger: a.logger}
			out, err := site.Search(cmd.Context(), registry.SearchArgs{
				Query:    strings.Join(args, " "),
				Limit:    limit,
				Cursor:   cursor,
				Category: category,
			})
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			if len(out.Results) == 0 {
				fmt.Fprintln(w, "No results.")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SCORE\tTITLE\tCATEGORY\tURL")
			for _, r := range out.Results {
				fmt.Fprintf(tw, "%.4g\t%s\t%s\t%s\n", r.Score, r.Summary.Title, r.Summary.Category, r.Summary.URL)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if out.NextCursor != "" {
				fmt.Fprintf(w, "\nMore results: --cursor %s\n", out.NextCursor)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default from config)")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Continue from a pagination cursor")
	cmd.Flags().StringVar(&category, "category", "", "Only show entries of this category")
	return cmd
}
