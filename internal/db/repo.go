package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

var _ newsportal.Store = (*Repository)(nil)

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// LatestNews returns at most limit news sorted by date DESC, newsId DESC.
func (r *Repository) LatestNews(ctx context.Context, limit int) ([]newsportal.News, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be greater than 0: limit=%d", limit)
	}

	var news []News
	err := r.db.ModelContext(ctx, &news).
		OrderExpr(`"t"."date" DESC`).
		OrderExpr(`"t"."newsId" DESC`).
		Limit(limit).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	return mapNews(news), nil
}

func (r *Repository) NewsByID(ctx context.Context, newsID int) (*newsportal.News, error) {
	news := &News{}
	err := r.db.ModelContext(ctx, news).
		Where(`"t"."newsId" = ?`, newsID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	result := news.ToPortal()
	return &result, nil
}

func (r *Repository) CreateNews(ctx context.Context, news *newsportal.News) error {
	row := newNews(news)
	if row.Date.IsZero() {
		row.Date = time.Now()
	}

	if _, err := r.db.ModelContext(ctx, row).Insert(); err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	news.ID, news.Date = row.ID, row.Date
	return nil
}

// CommentsByNews returns all comments of the news sorted by created ASC, commentId ASC.
func (r *Repository) CommentsByNews(ctx context.Context, newsID int) ([]newsportal.Comment, error) {
	var comments []Comment
	err := r.db.ModelContext(ctx, &comments).
		Relation(Columns.Comment.Author).
		Where(`"t"."newsId" = ?`, newsID).
		OrderExpr(`"t"."created" ASC`).
		OrderExpr(`"t"."commentId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	return mapComments(comments), nil
}

func (r *Repository) CommentByID(ctx context.Context, commentID int) (*newsportal.Comment, error) {
	comment := &Comment{}
	err := r.db.ModelContext(ctx, comment).
		Relation(Columns.Comment.Author).
		Where(`"t"."commentId" = ?`, commentID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	result := comment.ToPortal()
	return &result, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *newsportal.Comment) error {
	row := newComment(comment)
	if row.Created.IsZero() {
		row.Created = time.Now()
	}

	if _, err := r.db.ModelContext(ctx, row).Insert(); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.ID, comment.Created = row.ID, row.Created
	return nil
}

func (r *Repository) UpdateCommentText(ctx context.Context, commentID int, text string) error {
	_, err := r.db.ModelContext(ctx, (*Comment)(nil)).
		Set(`"text" = ?`, text).
		Where(`"commentId" = ?`, commentID).
		Update()
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID int) error {
	_, err := r.db.ModelContext(ctx, (*Comment)(nil)).
		Where(`"commentId" = ?`, commentID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (r *Repository) CommentsCount(ctx context.Context) (int, error) {
	count, err := r.db.ModelContext(ctx, (*Comment)(nil)).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get comments count: %w", err)
	}

	return count, nil
}

func (r *Repository) UserByID(ctx context.Context, userID int) (*newsportal.User, error) {
	return r.oneUser(ctx, `"t"."userId" = ?`, userID)
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*newsportal.User, error) {
	return r.oneUser(ctx, `"t"."username" = ?`, username)
}

func (r *Repository) oneUser(ctx context.Context, condition string, param interface{}) (*newsportal.User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(condition, param).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	result := user.ToPortal()
	return &result, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *newsportal.User) error {
	row := newUser(user)
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	if _, err := r.db.ModelContext(ctx, row).Insert(); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID, user.CreatedAt = row.ID, row.CreatedAt
	return nil
}
