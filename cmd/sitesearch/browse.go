package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/tui"
	"github.com/jonwraymond/sitesearch/widget"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [query]",
		Short: "Open the interactive search overlay",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			disc, err := a.discovery()
			if err != nil {
				return err
			}
			defer disc.Close()

			var query string
			if len(args) == 1 {
				query = args[0]
			}
			theme := widget.NewThemeHandle(a.cfg.Appearance())
			sel, ok, err := tui.Run(cmd.Context(), disc, theme, tui.Options{
				Debounce: a.cfg.Search.Debounce,
				Limit:    a.cfg.Search.MaxResults,
				Query:    query,
			})
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}

			w := cmd.OutOrStdout()
			switch sel.Target.Kind {
			case content.TargetAnchor:
				fmt.Fprintf(w, "scroll to #%s (%s)\n", sel.Target.Value, sel.Result.Summary.Title)
			default:
				fmt.Fprintf(w, "navigate to %s (%s)\n", sel.Target.Value, sel.Result.Summary.Title)
			}
			return nil
		},
	}
}
