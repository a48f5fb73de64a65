package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/ya-news/internal/litedb"
	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRPC(t *testing.T) (http.Handler, *litedb.Repository) {
	t.Helper()

	db, err := litedb.OpenMemory(nil)
	require.NoError(t, err)
	store := litedb.New(db)
	t.Cleanup(func() { _ = store.Close() })

	manager := newsportal.NewManager(
		store,
		newsportal.NewModerator(newsportal.DefaultBadWords, newsportal.DefaultWarning),
		2,
	)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, manager), store
}

func call(t *testing.T, h http.Handler, method string, params interface{}) rpcResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/rpc/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestNewsService(t *testing.T) {
	h, store := newTestRPC(t)
	ctx := context.Background()

	now := time.Now()
	for i, title := range []string{"old", "newest", "middle"} {
		require.NoError(t, store.CreateNews(ctx, &newsportal.News{
			Title: title,
			Text:  "text",
			Date:  now.Add(time.Duration([]int{-48, 0, -24}[i]) * time.Hour),
		}))
	}

	user := &newsportal.User{Username: "reader"}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NoError(t, store.CreateComment(ctx, &newsportal.Comment{NewsID: 1, AuthorID: user.ID, Text: "second", Created: now}))
	require.NoError(t, store.CreateComment(ctx, &newsportal.Comment{NewsID: 1, AuthorID: user.ID, Text: "first", Created: now.Add(-time.Hour)}))

	t.Run("list", func(t *testing.T) {
		resp := call(t, h, "news.list", nil)
		require.Nil(t, resp.Error)

		var list []News
		require.NoError(t, json.Unmarshal(resp.Result, &list))
		require.Len(t, list, 2)
		assert.Equal(t, "newest", list[0].Title)
		assert.Equal(t, "middle", list[1].Title)
	})

	t.Run("get", func(t *testing.T) {
		resp := call(t, h, "news.get", map[string]int{"id": 1})
		require.Nil(t, resp.Error)

		var detail NewsDetail
		require.NoError(t, json.Unmarshal(resp.Result, &detail))
		assert.Equal(t, "old", detail.Title)
		require.Len(t, detail.Comments, 2)
		assert.Equal(t, "first", detail.Comments[0].Text)
		assert.Equal(t, "reader", detail.Comments[0].Author)
	})

	t.Run("get positional", func(t *testing.T) {
		resp := call(t, h, "news.get", []int{2})
		require.Nil(t, resp.Error)
	})

	t.Run("get missing", func(t *testing.T) {
		resp := call(t, h, "news.get", map[string]int{"id": 100})
		require.NotNil(t, resp.Error)
		assert.Equal(t, 404, resp.Error.Code)
	})

	t.Run("get invalid id", func(t *testing.T) {
		resp := call(t, h, "news.get", map[string]int{"id": 0})
		require.NotNil(t, resp.Error)
		assert.Equal(t, 400, resp.Error.Code)
	})

	t.Run("unknown method", func(t *testing.T) {
		resp := call(t, h, "news.publish", nil)
		require.NotNil(t, resp.Error)
	})
}
