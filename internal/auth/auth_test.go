package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

type stubUsers map[int]*newsportal.User

func (s stubUsers) UserByID(_ context.Context, userID int) (*newsportal.User, error) {
	if u, ok := s[userID]; ok {
		return u, nil
	}
	return nil, newsportal.ErrNotFound
}

func newTestSessions() *Sessions {
	return NewSessions("test-secret", time.Hour, "sessionid")
}

func TestSessions_IssueParse(t *testing.T) {
	s := newTestSessions()

	token, err := s.Issue(&newsportal.Principal{ID: 3, Username: "Автор"})
	require.NoError(t, err)

	p, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "Автор", p.Username)

	_, err = s.Issue(nil)
	assert.ErrorIs(t, err, newsportal.ErrUnauthenticated)
}

func TestSessions_ParseRejects(t *testing.T) {
	s := newTestSessions()
	token, err := s.Issue(&newsportal.Principal{ID: 1, Username: "a"})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewSessions("other", time.Hour, "sessionid").Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("expired", func(t *testing.T) {
		expired := newTestSessions()
		expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := expired.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other signing method", func(t *testing.T) {
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = s.Parse(unsigned)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}

func newTestEcho(s *Sessions, users Users) *echo.Echo {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.Use(Identify(s, users, lg))

	whoami := func(c echo.Context) error {
		p := PrincipalFrom(c)
		if !p.Authenticated() {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, p.Username)
	}
	e.GET("/whoami", whoami)
	e.GET("/private/:id/", whoami, LoginRequired(urls.Default()))
	e.POST("/login", func(c echo.Context) error {
		return SetSession(c, s, &newsportal.Principal{ID: 1, Username: "author"})
	})

	return e
}

func serve(e *echo.Echo, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestIdentify(t *testing.T) {
	s := newTestSessions()
	users := stubUsers{1: {ID: 1, Username: "author"}}
	e := newTestEcho(s, users)

	rec := serve(e, http.MethodGet, "/whoami")
	assert.Equal(t, "anonymous", rec.Body.String())

	login := serve(e, http.MethodPost, "/login")
	cookies := login.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sessionid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = serve(e, http.MethodGet, "/whoami", cookies[0])
	assert.Equal(t, "author", rec.Body.String())

	t.Run("invalid cookie is cleared", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/whoami", &http.Cookie{Name: "sessionid", Value: "broken"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
		cleared := rec.Result().Cookies()
		require.Len(t, cleared, 1)
		assert.Equal(t, -1, cleared[0].MaxAge)
	})

	t.Run("removed user", func(t *testing.T) {
		rec := serve(newTestEcho(s, stubUsers{}), http.MethodGet, "/whoami", cookies[0])
		assert.Equal(t, "anonymous", rec.Body.String())
	})
}

func TestLoginRequired(t *testing.T) {
	s := newTestSessions()
	e := newTestEcho(s, stubUsers{1: {ID: 1, Username: "author"}})

	rec := serve(e, http.MethodGet, "/private/7/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=/private/7/", rec.Header().Get(echo.HeaderLocation))

	token, err := s.Issue(&newsportal.Principal{ID: 1, Username: "author"})
	require.NoError(t, err)
	rec = serve(e, http.MethodGet, "/private/7/", &http.Cookie{Name: "sessionid", Value: token})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "author", rec.Body.String())
}
