package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

//go:generate zenrpc

// NewsService provides read-only RPC methods for news.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// List returns the home page listing, most recent first.
//
//zenrpc:return latest news
//zenrpc:500 internal server error
func (s NewsService) List(ctx context.Context) ([]News, error) {
	list, err := s.manager.HomeNews(ctx)
	if err != nil {
		return nil, err
	}

	return NewNewsList(list), nil
}

// Get returns a news item with all of its comments, oldest first.
//
//zenrpc:id news ID
//zenrpc:return news with comments
//zenrpc:400 id must be positive
//zenrpc:404 news not found
//zenrpc:500 internal server error
func (s NewsService) Get(ctx context.Context, id int) (*NewsDetail, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	detail, err := s.manager.NewsDetail(ctx, id)
	if errors.Is(err, newsportal.ErrNotFound) {
		return nil, zenrpc.NewStringError(404, "news not found")
	} else if err != nil {
		return nil, err
	}

	result := NewNewsDetail(*detail)
	return &result, nil
}
