package litedb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

var baseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (context.Context, *Repository) {
	t.Helper()

	db, err := OpenMemory(nil)
	require.NoError(t, err)

	repo := New(db)
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	return context.Background(), repo
}

func TestRepository_LatestNews(t *testing.T) {
	ctx, repo := newTestRepo(t)

	for i := 0; i < 11; i++ {
		news := &newsportal.News{
			Title: fmt.Sprintf("Новость %d", i),
			Text:  "Просто текст.",
			Date:  baseTime.Add(-time.Duration(i) * 24 * time.Hour),
		}
		require.NoError(t, repo.CreateNews(ctx, news))
		require.NotZero(t, news.ID)
	}

	t.Run("LimitsResult", func(t *testing.T) {
		news, err := repo.LatestNews(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, news, 10)
		assert.Equal(t, "Новость 0", news[0].Title)
		assert.Equal(t, "Новость 9", news[9].Title)
	})

	t.Run("ReturnsAllWhenFewer", func(t *testing.T) {
		news, err := repo.LatestNews(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, news, 11)
		for i := 0; i < len(news)-1; i++ {
			assert.False(t, news[i].Date.Before(news[i+1].Date), "news not sorted by date desc at %d", i)
		}
	})

	t.Run("EqualDatesOrderedByIDDesc", func(t *testing.T) {
		first := &newsportal.News{Title: "A", Date: baseTime.Add(time.Hour)}
		second := &newsportal.News{Title: "B", Date: baseTime.Add(time.Hour)}
		require.NoError(t, repo.CreateNews(ctx, first))
		require.NoError(t, repo.CreateNews(ctx, second))

		news, err := repo.LatestNews(ctx, 2)
		require.NoError(t, err)
		require.Len(t, news, 2)
		assert.Equal(t, second.ID, news[0].ID)
		assert.Equal(t, first.ID, news[1].ID)
	})

	t.Run("InvalidLimitReturnsError", func(t *testing.T) {
		_, err := repo.LatestNews(ctx, 0)
		require.Error(t, err)
	})
}

func TestRepository_Comments(t *testing.T) {
	ctx, repo := newTestRepo(t)

	author := &newsportal.User{Username: "Автор"}
	require.NoError(t, repo.CreateUser(ctx, author))
	news := &newsportal.News{Title: "Заголовок", Text: "Текст"}
	require.NoError(t, repo.CreateNews(ctx, news))

	for _, i := range []int{3, 0, 2, 1} {
		comment := &newsportal.Comment{
			NewsID:   news.ID,
			AuthorID: author.ID,
			Text:     fmt.Sprintf("Tекст %d", i),
			Created:  baseTime.Add(time.Duration(i) * 24 * time.Hour),
		}
		require.NoError(t, repo.CreateComment(ctx, comment))
	}

	t.Run("SortedByCreatedAsc", func(t *testing.T) {
		comments, err := repo.CommentsByNews(ctx, news.ID)
		require.NoError(t, err)
		require.Len(t, comments, 4)
		for i, c := range comments {
			assert.Equal(t, fmt.Sprintf("Tекст %d", i), c.Text)
			assert.Equal(t, "Автор", c.Author)
		}
	})

	t.Run("OtherNewsHasNoComments", func(t *testing.T) {
		comments, err := repo.CommentsByNews(ctx, news.ID+1)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("UpdateKeepsCreated", func(t *testing.T) {
		comments, err := repo.CommentsByNews(ctx, news.ID)
		require.NoError(t, err)
		target := comments[0]

		require.NoError(t, repo.UpdateCommentText(ctx, target.ID, "Новое Бла-бла"))

		got, err := repo.CommentByID(ctx, target.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Новое Бла-бла", got.Text)
		assert.True(t, target.Created.Equal(got.Created))
	})

	t.Run("Delete", func(t *testing.T) {
		comments, err := repo.CommentsByNews(ctx, news.ID)
		require.NoError(t, err)

		require.NoError(t, repo.DeleteComment(ctx, comments[0].ID))

		count, err := repo.CommentsCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		got, err := repo.CommentByID(ctx, comments[0].ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRepository_Users(t *testing.T) {
	ctx, repo := newTestRepo(t)

	user := &newsportal.User{Username: "Гегемон", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	byName, err := repo.UserByUsername(ctx, "Гегемон")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)
	assert.Equal(t, "hash", byName.PasswordHash)

	byID, err := repo.UserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Гегемон", byID.Username)

	missing, err := repo.UserByUsername(ctx, "Гораций")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.CreateUser(ctx, &newsportal.User{Username: "Гегемон"})
	assert.Error(t, err, "usernames are unique")
}
