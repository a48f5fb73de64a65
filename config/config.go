package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

type Config struct {
	Database pg.Options
	SQLite   struct {
		Path string
	}
	App struct {
		Host                string
		Port                int
		NewsCountOnHomePage int
		Migrate             bool
		LogQueries          bool
	}
	Auth struct {
		Secret     string
		SessionTTL time.Duration
		CookieName string
		LoginRate  float64
		LoginBurst int
	}
	Moderation struct {
		BadWords []string
		Warning  string
	}
	URLs urls.Map
}

// Default returns the configuration used for keys missing from the TOML file.
func Default() Config {
	var cfg Config
	cfg.App.Host = "0.0.0.0"
	cfg.App.Port = 3000
	cfg.App.NewsCountOnHomePage = newsportal.DefaultNewsCountOnHomePage
	cfg.Auth.SessionTTL = 14 * 24 * time.Hour
	cfg.Auth.CookieName = "sessionid"
	cfg.Auth.LoginRate = 1
	cfg.Auth.LoginBurst = 5
	cfg.Moderation.BadWords = append([]string(nil), newsportal.DefaultBadWords...)
	cfg.Moderation.Warning = newsportal.DefaultWarning
	cfg.URLs = urls.Default()
	return cfg
}

// Load decodes the TOML file at path over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}

	// a partial [URLs] table overrides only the routes it names
	defaults := urls.Default()
	for name, tmpl := range defaults {
		if _, ok := cfg.URLs[name]; !ok {
			cfg.URLs[name] = tmpl
		}
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.App.NewsCountOnHomePage <= 0 {
		errs = append(errs, fmt.Errorf("App.NewsCountOnHomePage must be positive, got %d", c.App.NewsCountOnHomePage))
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		errs = append(errs, errors.New("Auth.Secret is required"))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("Auth.SessionTTL must be positive"))
	}
	if strings.TrimSpace(c.Moderation.Warning) == "" {
		errs = append(errs, errors.New("Moderation.Warning is required"))
	}
	if err := c.URLs.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ParseDatabaseURL converts a postgres:// URL into connection options with
// the service pool defaults.
func ParseDatabaseURL(databaseURL string, maxConns int, maxConnLifetime time.Duration) (pg.Options, error) {
	opt, err := pg.ParseURL(databaseURL)
	if err != nil {
		return pg.Options{}, fmt.Errorf("failed to parse database URL: %w", err)
	}

	opt.MaxRetries = 3
	if maxConns > 0 {
		opt.PoolSize = maxConns
	}
	if maxConnLifetime > 0 {
		opt.MaxConnAge = maxConnLifetime
	}

	return *opt, nil
}
