package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/swaggo/swag"
	"golang.org/x/time/rate"

	_ "github.com/daniilsolovey/ya-news/docs"
	"github.com/daniilsolovey/ya-news/internal/auth"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

const (
	healthPath  = "/health"
	metricsPath = "/metrics"
	swaggerPath = "/swagger/doc.json"
	rpcPath     = "/v1/rpc/"

	contentTypeJSON = "application/json"
)

type Options struct {
	// LoginRate is the sustained number of login and signup attempts per
	// second allowed from one client; zero disables throttling.
	LoginRate  float64
	LoginBurst int
	RPC        http.Handler
}

// RegisterRoutes registers all routes for the handler
func (h *NewsHandler) RegisterRoutes(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(h.loggingMiddleware)
	e.Use(auth.Identify(h.sessions, h.uc, h.log))

	h.registerNewsRoutes(e)
	h.registerUserRoutes(e, h.loginLimiter(opts))
	h.registerServiceRoutes(e, opts.RPC)

	return e
}

func (h *NewsHandler) registerNewsRoutes(e *echo.Echo) {
	loginRequired := auth.LoginRequired(h.urls)

	e.GET(h.urls.Route(urls.Home), h.Home)

	detail := h.urls.Route(urls.Detail)
	e.GET(detail, h.Detail)
	e.POST(detail, h.CreateComment, loginRequired)

	edit := h.urls.Route(urls.Edit)
	e.GET(edit, h.EditPage, loginRequired)
	e.POST(edit, h.EditComment, loginRequired)

	del := h.urls.Route(urls.Delete)
	e.GET(del, h.DeletePage, loginRequired)
	e.POST(del, h.DeleteComment, loginRequired)
	e.DELETE(del, h.DeleteComment, loginRequired)
}

func (h *NewsHandler) registerUserRoutes(e *echo.Echo, limiter []echo.MiddlewareFunc) {
	login := h.urls.Route(urls.Login)
	e.GET(login, h.LoginPage)
	e.POST(login, h.Login, limiter...)

	logout := h.urls.Route(urls.Logout)
	e.GET(logout, h.Logout)
	e.POST(logout, h.Logout)

	signup := h.urls.Route(urls.Signup)
	e.GET(signup, h.SignupPage)
	e.POST(signup, h.Signup, limiter...)
}

func (h *NewsHandler) registerServiceRoutes(e *echo.Echo, rpc http.Handler) {
	e.GET(healthPath, h.handleHealth)
	e.GET(metricsPath, echo.WrapHandler(h.metrics.Handler()))
	e.GET(swaggerPath, h.handleSwagger)

	if rpc != nil {
		e.Any(rpcPath, echo.WrapHandler(rpc))
	}
}

func (h *NewsHandler) loginLimiter(opts Options) []echo.MiddlewareFunc {
	if opts.LoginRate <= 0 {
		return nil
	}

	burst := opts.LoginBurst
	if burst <= 0 {
		burst = 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(opts.LoginRate),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			h.log.Info("login throttled", "client", identifier)
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many requests"})
		},
	})}
}

func (h *NewsHandler) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

func (h *NewsHandler) handleSwagger(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err, http.StatusInternalServerError, "swagger doc unavailable")
	}
	return c.Blob(http.StatusOK, contentTypeJSON, []byte(doc))
}

func (h *NewsHandler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		duration := time.Since(start)
		req := c.Request()
		status := c.Response().Status

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		h.metrics.RecordHTTPRequest(req.Method, route, status, duration.Seconds())

		h.log.Info("HTTP request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return nil
	}
}
