package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonwraymond/sitesearch/config"
	"github.com/jonwraymond/sitesearch/contact"
	"github.com/jonwraymond/sitesearch/discovery"
	"github.com/jonwraymond/sitesearch/logging"
	"github.com/jonwraymond/sitesearch/registry"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries global flags and the state built from them.
type app struct {
	configPath string
	envFiles   []string
	verbose    bool
	jsonOut    bool
	strategy   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "sitesearch",
		Short:        "Site search: ranking, overlay, MCP and REST for the site catalog",
		SilenceUsage: true,
		Long: `sitesearch indexes the site's content catalog and ranks entries for
free-text queries. It can answer queries on the command line, run the search
overlay in the terminal, and serve the catalog over MCP and a REST API.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to sitesearch.yaml")
	flags.StringSliceVar(&a.envFiles, "env-file", []string{".env"}, "dotenv files to load (missing files are ignored)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&a.jsonOut, "json", false, "Print JSON output")
	flags.StringVar(&a.strategy, "strategy", "", "Ranking strategy: weighted, bm25 or hybrid (overrides config)")

	root.AddCommand(
		newSearchCmd(a),
		newBrowseCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newCatalogCmd(a),
		newContactCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	var err error
	a.logger, err = logging.New(logging.Options{Verbose: a.verbose})
	if err != nil {
		return err
	}
	a.cfg, err = config.Load(a.configPath, a.envFiles...)
	if err != nil {
		return err
	}
	if a.strategy != "" {
		a.cfg.Search.Strategy = a.strategy
		if err := a.cfg.Validate(); err != nil {
			return err
		}
	}
	a.logger.Debug("config loaded",
		zap.String("strategy", a.cfg.Search.Strategy),
		zap.String("catalog", a.cfg.Catalog))
	return nil
}

func (a *app) discovery() (*discovery.Discovery, error) {
	cat, err := a.cfg.LoadCatalog()
	if err != nil {
		return nil, err
	}
	opts := a.cfg.DiscoveryOptions(cat)
	opts.Logger = a.logger.Named("discovery")
	return discovery.New(opts)
}

// submitter builds the contact pipeline from config. The returned func
// releases the store, if any.
func (a *app) submitter() (contact.Submitter, func() error, error) {
	cc := a.cfg.Contact
	var subs contact.Multi
	closer := func() error { return nil }

	if cc.Store != "" {
		store, err := contact.OpenStore(cc.Store)
		if err != nil {
			return nil, nil, err
		}
		subs = append(subs, store)
		closer = store.Close
	}
	if cc.SendGrid.Enabled() {
		mail, err := contact.NewMailSubmitter(contact.MailConfig{
			APIKey:   cc.SendGrid.APIKey,
			From:     cc.SendGrid.From,
			FromName: cc.SendGrid.FromName,
			To:       cc.SendGrid.To,
		})
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		subs = append(subs, mail)
	}
	if len(subs) == 0 {
		subs = append(subs, contact.DelaySubmitter{Delay: cc.Delay})
	}
	return subs, closer, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sitesearch", version)
		},
	}
}

// site builds the discovery facade, the contact pipeline and a started
// registry with the site tools. The returned func releases all of them.
func (a *app) site(ctx context.Context) (*registry.Registry, registry.Site, func(), error) {
	disc, err := a.discovery()
	if err != nil {
		return nil, registry.Site{}, nil, err
	}
	sub, closeSub, err := a.submitter()
	if err != nil {
		_ = disc.Close()
		return nil, registry.Site{}, nil, err
	}

	site := registry.Site{Discovery: disc, Submitter: sub, Logger: a.logger.Named("site")}
	reg := registry.New(registry.Config{
		ServerInfo: registry.ServerInfo{Name: "sitesearch", Version: version},
		Logger:     a.logger.Named("registry"),
	})
	cleanup := func() {
		_ = reg.Stop()
		_ = closeSub()
		_ = disc.Close()
	}
	if err := registry.RegisterSiteTools(reg, site); err != nil {
		cleanup()
		return nil, registry.Site{}, nil, err
	}
	if err := reg.Start(ctx); err != nil {
		cleanup()
		return nil, registry.Site{}, nil, err
	}
	return reg, site, cleanup, nil
}
