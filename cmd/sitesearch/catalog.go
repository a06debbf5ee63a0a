package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/sitesearch/content"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the content catalog",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all entries",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cat, err := a.cfg.LoadCatalog()
				if err != nil {
					return err
				}
				return a.printEntries(cmd, cat.Entries())
			},
		},
		&cobra.Command{
			Use:   "featured",
			Short: "List featured entries",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cat, err := a.cfg.LoadCatalog()
				if err != nil {
					return err
				}
				return a.printEntries(cmd, cat.Featured())
			},
		},
		&cobra.Command{
			Use:   "categories",
			Short: "List categories in catalog order",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cat, err := a.cfg.LoadCatalog()
				if err != nil {
					return err
				}
				if a.jsonOut {
					return writeJSON(cmd.OutOrStdout(), cat.Categories())
				}
				for _, c := range cat.Categories() {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate <file>",
			Short: "Check a catalog file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cat, err := content.LoadCatalog(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d entries, %d categories\n", args[0], cat.Len(), len(cat.Categories()))
				return nil
			},
		},
	)
	return cmd
}

func (a *app) printEntries(cmd *cobra.Command, entries []content.Entry) error {
	if a.jsonOut {
		return writeJSON(cmd.OutOrStdout(), entries)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tURL\tFEATURED")
	for _, e := range entries {
		featured := ""
		if e.Featured {
			featured = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Category, e.URL, featured)
	}
	return tw.Flush()
}
