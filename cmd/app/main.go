package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/ya-news/config"
	"github.com/daniilsolovey/ya-news/internal/app"
	"github.com/daniilsolovey/ya-news/internal/db"
	"github.com/daniilsolovey/ya-news/internal/litedb"
	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

var (
	flConfig            = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug             = flag.Bool("debug", false, "enable debug mode")
	flDatabaseURL       = flag.String("database-url", "", "database connection URL, overrides [Database] (DATABASE_URL)")
	flDBMaxConns        = flag.Int("db-max-conns", 5, "maximum number of database connections (DB_MAX_CONNS)")
	flDBMaxConnLifetime = flag.Duration("db-max-conn-lifetime", 300*time.Second, "maximum lifetime of database connection (DB_MAX_CONN_LIFETIME)")
	flSQLite            = flag.String("sqlite", "", "path to SQLite database file, overrides [SQLite] (SQLITE)")
	lg                  *slog.Logger
)

// @title YaNews API
// @version 1.0
// @description News and comments service
// @host localhost:3000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	cfg, err := config.Load(*flConfig)
	exitOnError(err)

	if *flDatabaseURL != "" {
		cfg.Database, err = config.ParseDatabaseURL(*flDatabaseURL, *flDBMaxConns, *flDBMaxConnLifetime)
		exitOnError(err)
	}
	if *flSQLite != "" {
		cfg.SQLite.Path = *flSQLite
	}
	exitOnError(cfg.Validate())

	ctx := context.Background()

	store, closer, err := openStore(ctx, cfg)
	exitOnError(err)
	defer closer.Close()

	service := app.New(cfg, store, lg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx, cfg.App.Port)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

// openStore picks SQLite when a path is configured and PostgreSQL otherwise.
func openStore(ctx context.Context, cfg config.Config) (newsportal.Store, io.Closer, error) {
	if cfg.SQLite.Path != "" {
		var queryLogger *slog.Logger
		if cfg.App.LogQueries {
			queryLogger = lg
		}

		gdb, err := litedb.Open(cfg.SQLite.Path, queryLogger)
		if err != nil {
			return nil, nil, err
		}

		lg.Info("using sqlite store", "path", cfg.SQLite.Path)
		repo := litedb.New(gdb)
		return repo, repo, nil
	}

	if cfg.App.Migrate {
		if err := db.Migrate(ctx, &cfg.Database); err != nil {
			return nil, nil, err
		}
		lg.Info("migrations applied")
	}

	dbConnect := pg.Connect(&cfg.Database)
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(lg))
	}

	repo := db.New(dbConnect)
	if err := repo.Ping(ctx); err != nil {
		_ = repo.Close()
		return nil, nil, err
	}

	lg.Info("using postgres store", "addr", cfg.Database.Addr, "database", cfg.Database.Database)
	return repo, repo, nil
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
