// Package config loads sitesearch settings from YAML, .env files and
// SITESEARCH_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/sitesearch/content"
	"github.com/jonwraymond/sitesearch/discovery"
	"github.com/jonwraymond/sitesearch/scoring"
	"github.com/jonwraymond/sitesearch/widget"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SITESEARCH_"

// ErrInvalidConfig is wrapped by validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the in-memory representation of sitesearch.yaml.
type Config struct {
	// Catalog is a YAML catalog path. Empty uses the embedded catalog.
	Catalog string        `yaml:"catalog,omitempty"`
	Theme   string        `yaml:"theme,omitempty"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Contact ContactConfig `yaml:"contact"`
}

type SearchConfig struct {
	Strategy    string        `yaml:"strategy"`
	MaxResults  int           `yaml:"max_results"`
	HybridAlpha float64       `yaml:"hybrid_alpha,omitempty"`
	Debounce    time.Duration `yaml:"debounce"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type ContactConfig struct {
	// Store is a SQLite DSN. Empty disables persistence.
	Store string `yaml:"store,omitempty"`
	// Delay is the simulated delivery time used when no mail is configured.
	Delay    time.Duration `yaml:"delay"`
	SendGrid MailConfig    `yaml:"sendgrid"`
}

type MailConfig struct {
	APIKey   string `yaml:"api_key,omitempty"`
	From     string `yaml:"from,omitempty"`
	FromName string `yaml:"from_name,omitempty"`
	To       string `yaml:"to,omitempty"`
}

// Enabled reports whether mail delivery is configured.
func (m MailConfig) Enabled() bool {
	return m.APIKey != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: "light",
		Search: SearchConfig{
			Strategy:   string(discovery.StrategyWeighted),
			MaxResults: scoring.MaxResults,
			Debounce:   100 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Contact: ContactConfig{
			Delay: 1500 * time.Millisecond,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (optional),
// the given .env files and the process environment. Missing .env files
// are ignored; variables already set in the environment win.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config %s: %w", path, err)
		}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cannot load env file %s: %w", f, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies SITESEARCH_* overrides read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}

	str("CATALOG", &c.Catalog)
	str("THEME", &c.Theme)
	str("STRATEGY", &c.Search.Strategy)
	if v, ok := lookup(EnvPrefix + "MAX_RESULTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMAX_RESULTS: %w", EnvPrefix, err))
		} else {
			c.Search.MaxResults = n
		}
	}
	if v, ok := lookup(EnvPrefix + "HYBRID_ALPHA"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sHYBRID_ALPHA: %w", EnvPrefix, err))
		} else {
			c.Search.HybridAlpha = f
		}
	}
	dur("DEBOUNCE", &c.Search.Debounce)
	str("ADDR", &c.Server.Addr)
	dur("SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout)
	str("CONTACT_STORE", &c.Contact.Store)
	dur("CONTACT_DELAY", &c.Contact.Delay)
	str("SENDGRID_API_KEY", &c.Contact.SendGrid.APIKey)
	str("MAIL_FROM", &c.Contact.SendGrid.From)
	str("MAIL_FROM_NAME", &c.Contact.SendGrid.FromName)
	str("MAIL_TO", &c.Contact.SendGrid.To)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if _, err := discovery.ParseStrategy(c.Search.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Search.MaxResults < 0 {
		errs = append(errs, fmt.Errorf("search.max_results must be >= 0, got %d", c.Search.MaxResults))
	}
	if c.Search.HybridAlpha < 0 || c.Search.HybridAlpha > 1 {
		errs = append(errs, fmt.Errorf("search.hybrid_alpha must be in [0,1], got %v", c.Search.HybridAlpha))
	}
	if c.Search.Debounce < 0 {
		errs = append(errs, fmt.Errorf("search.debounce must not be negative"))
	}
	if _, err := widget.ParseAppearance(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if m := c.Contact.SendGrid; m.Enabled() && (!strings.Contains(m.From, "@") || !strings.Contains(m.To, "@")) {
		errs = append(errs, errors.New("contact.sendgrid needs from and to addresses"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadCatalog returns the configured catalog.
func (c *Config) LoadCatalog() (*content.Catalog, error) {
	if c.Catalog == "" {
		return content.DefaultCatalog()
	}
	return content.LoadCatalog(c.Catalog)
}

// DiscoveryOptions maps the search settings onto discovery options.
func (c *Config) DiscoveryOptions(cat *content.Catalog) discovery.Options {
	strategy, _ := discovery.ParseStrategy(c.Search.Strategy)
	return discovery.Options{
		Catalog:     cat,
		Strategy:    strategy,
		HybridAlpha: c.Search.HybridAlpha,
		MaxResults:  c.Search.MaxResults,
	}
}

// Appearance returns the configured initial theme.
func (c *Config) Appearance() widget.Appearance {
	a, _ := widget.ParseAppearance(c.Theme)
	return a
}
