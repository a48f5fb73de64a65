package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/ya-news/config"
	"github.com/daniilsolovey/ya-news/internal/auth"
	"github.com/daniilsolovey/ya-news/internal/metrics"
	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/rest"
	"github.com/daniilsolovey/ya-news/internal/rpc"
)

type App struct {
	Store   newsportal.Store
	Manager *newsportal.Manager
	Logger  *slog.Logger
	Echo    *echo.Echo
	Metrics *metrics.Metrics
	Config  config.Config
}

func New(cfg config.Config, store newsportal.Store, logger *slog.Logger) *App {
	manager := newsportal.NewManager(
		store,
		newsportal.NewModerator(cfg.Moderation.BadWords, cfg.Moderation.Warning),
		cfg.App.NewsCountOnHomePage,
	)
	sessions := auth.NewSessions(cfg.Auth.Secret, cfg.Auth.SessionTTL, cfg.Auth.CookieName)
	m := metrics.New()

	handler := rest.NewNewsHandler(manager, sessions, cfg.URLs, m, logger)

	return &App{
		Store:   store,
		Manager: manager,
		Logger:  logger,
		Metrics: m,
		Config:  cfg,
		Echo: handler.RegisterRoutes(rest.Options{
			LoginRate:  cfg.Auth.LoginRate,
			LoginBurst: cfg.Auth.LoginBurst,
			RPC:        rpc.New(logger, manager),
		}),
	}
}

func (a *App) Run(ctx context.Context, port int) error {
	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(port))
	a.Logger.InfoContext(ctx, "http server starting", "addr", addr)

	err := a.Echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("start http server: %w", err)
	}
	return nil
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
