package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

const principalKey = "principal"

// Users looks up the account behind a session.
type Users interface {
	UserByID(ctx context.Context, userID int) (*newsportal.User, error)
}

// Identify attaches the session principal to the request context. Requests
// without a cookie stay anonymous; a cookie that is invalid or points to a
// removed account is cleared and the request continues anonymously.
func Identify(s *Sessions, users Users, lg *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(s.cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			principal, err := s.Parse(cookie.Value)
			if err != nil {
				lg.Debug("dropping session", "error", err)
				ClearSession(c, s)
				return next(c)
			}

			user, err := users.UserByID(c.Request().Context(), principal.ID)
			switch {
			case errors.Is(err, newsportal.ErrNotFound):
				lg.Info("session user no longer exists", "userId", principal.ID)
				ClearSession(c, s)
				return next(c)
			case err != nil:
				return err
			}

			c.Set(principalKey, user.Principal())
			return next(c)
		}
	}
}

// LoginRequired redirects anonymous callers to the login page, passing the
// requested URI as "next".
func LoginRequired(m urls.Map) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !PrincipalFrom(c).Authenticated() {
				return c.Redirect(http.StatusFound, m.LoginRedirect(c.Request().RequestURI))
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the request principal or nil for anonymous requests.
func PrincipalFrom(c echo.Context) *newsportal.Principal {
	p, _ := c.Get(principalKey).(*newsportal.Principal)
	return p
}

func SetSession(c echo.Context, s *Sessions, p *newsportal.Principal) error {
	token, err := s.Issue(p)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(s.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(principalKey, p)

	return nil
}

func ClearSession(c echo.Context, s *Sessions) {
	c.SetCookie(&http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	c.Set(principalKey, nil)
}
