package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/ya-news/internal/auth"
	"github.com/daniilsolovey/ya-news/internal/litedb"
	"github.com/daniilsolovey/ya-news/internal/metrics"
	"github.com/daniilsolovey/ya-news/internal/newsportal"
	"github.com/daniilsolovey/ya-news/internal/urls"
)

const (
	commentText    = "Текст комментария"
	newCommentText = "Обновлённый комментарий"
	testPassword   = "correct-horse-battery"
)

type testServer struct {
	ctx       context.Context
	e         *echo.Echo
	store     *litedb.Repository
	manager   *newsportal.Manager
	sessions  *auth.Sessions
	metrics   *metrics.Metrics
	urls      urls.Map
	author    *newsportal.Principal
	notAuthor *newsportal.Principal
	news      *newsportal.News
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()

	db, err := litedb.OpenMemory(nil)
	require.NoError(t, err)
	store := litedb.New(db)
	t.Cleanup(func() { _ = store.Close() })

	s := &testServer{
		ctx:      context.Background(),
		store:    store,
		sessions: auth.NewSessions("test-secret", time.Hour, "sessionid"),
		metrics:  metrics.New(),
		urls:     urls.Default(),
		manager: newsportal.NewManager(
			store,
			newsportal.NewModerator(newsportal.DefaultBadWords, newsportal.DefaultWarning),
			newsportal.DefaultNewsCountOnHomePage,
		),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.e = NewNewsHandler(s.manager, s.sessions, s.urls, s.metrics, logger).RegisterRoutes(opts)

	s.author = s.user(t, "Автор")
	s.notAuthor = s.user(t, "Не автор")

	s.news = &newsportal.News{Title: "Заголовок", Text: "Текст"}
	require.NoError(t, s.manager.PublishNews(s.ctx, s.news))

	return s
}

func (s *testServer) user(t *testing.T, username string) *newsportal.Principal {
	t.Helper()
	u, err := s.manager.Signup(s.ctx, username, testPassword)
	require.NoError(t, err)
	return u.Principal()
}

func (s *testServer) comment(t *testing.T) *newsportal.Comment {
	t.Helper()
	c, err := s.manager.CreateComment(s.ctx, s.news.ID, s.author, commentText)
	require.NoError(t, err)
	return c
}

func (s *testServer) commentsCount(t *testing.T) int {
	t.Helper()
	count, err := s.manager.CommentsCount(s.ctx)
	require.NoError(t, err)
	return count
}

func (s *testServer) reverse(t *testing.T, name string, args ...interface{}) string {
	t.Helper()
	path, err := s.urls.Reverse(name, args...)
	require.NoError(t, err)
	return path
}

// do sends a request as principal; a nil principal is an anonymous client.
func (s *testServer) do(t *testing.T, method, target string, form url.Values, principal *newsportal.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}

	if principal != nil {
		token, err := s.sessions.Issue(principal)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: s.sessions.CookieName(), Value: token})
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	return decode[map[string]json.RawMessage](t, rec)
}
