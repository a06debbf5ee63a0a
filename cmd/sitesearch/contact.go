package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/sitesearch/contact"
)

func newContactCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit and review contact requests",
	}
	cmd.AddCommand(newContactSubmitCmd(a), newContactRecentCmd(a))
	return cmd
}

func newContactSubmitCmd(a *app) *cobra.Command {
	var req contact.Request
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send a contact request through the configured pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sub, closeSub, err := a.submitter()
			if err != nil {
				return err
			}
			defer closeSub()

			form := contact.NewForm(sub, contact.WithLogger(a.logger.Named("contact")))
			s, err := form.Submit(cmd.Context(), req)
			var fe contact.FieldErrors
			if errors.As(err, &fe) && a.jsonOut {
				_ = writeJSON(cmd.OutOrStdout(), map[string]any{"fields": fe})
			}
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"id": s.ID, "status": form.Status().String()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Thanks %s, your request %s was received.\n", s.Request.Name, s.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "Your name")
	f.StringVar(&req.Email, "email", "", "Your email address")
	f.StringVar(&req.Organization, "org", "", "Your organization")
	f.StringVar(&req.Message, "message", "", "Message text")
	return cmd
}

func newContactRecentCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the most recent stored submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Contact.Store == "" {
				return errors.New("contact.store is not configured")
			}
			store, err := contact.OpenStore(a.cfg.Contact.Store)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RECEIVED\tNAME\tEMAIL\tORGANIZATION")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ReceivedAt.Format("2006-01-02 15:04"), r.Name, r.Email, r.Organization)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of submissions")
	return cmd
}
