package litedb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

var _ newsportal.Store = (*Repository)(nil)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *Repository) LatestNews(ctx context.Context, limit int) ([]newsportal.News, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be greater than 0: limit=%d", limit)
	}

	var rows []News
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query news: %w", err)
	}

	result := make([]newsportal.News, len(rows))
	for i := range rows {
		result[i] = rows[i].toPortal()
	}
	return result, nil
}

func (r *Repository) NewsByID(ctx context.Context, newsID int) (*newsportal.News, error) {
	var row News
	res := r.db.WithContext(ctx).Limit(1).Find(&row, "id = ?", newsID)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", res.Error)
	} else if res.RowsAffected == 0 {
		return nil, nil
	}

	news := row.toPortal()
	return &news, nil
}

func (r *Repository) CreateNews(ctx context.Context, news *newsportal.News) error {
	row := News{
		Title: news.Title,
		Text:  news.Text,
		Date:  utcOrNow(news.Date),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	news.ID, news.Date = row.ID, row.Date
	return nil
}

func (r *Repository) CommentsByNews(ctx context.Context, newsID int) ([]newsportal.Comment, error) {
	var rows []Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("news_id = ?", newsID).
		Order("created ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	result := make([]newsportal.Comment, len(rows))
	for i := range rows {
		result[i] = rows[i].toPortal()
	}
	return result, nil
}

func (r *Repository) CommentByID(ctx context.Context, commentID int) (*newsportal.Comment, error) {
	var row Comment
	res := r.db.WithContext(ctx).Preload("Author").Limit(1).Find(&row, "id = ?", commentID)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", res.Error)
	} else if res.RowsAffected == 0 {
		return nil, nil
	}

	comment := row.toPortal()
	return &comment, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *newsportal.Comment) error {
	row := Comment{
		NewsID:   comment.NewsID,
		AuthorID: comment.AuthorID,
		Text:     comment.Text,
		Created:  utcOrNow(comment.Created),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.ID, comment.Created = row.ID, row.Created
	return nil
}

func (r *Repository) UpdateCommentText(ctx context.Context, commentID int, text string) error {
	err := r.db.WithContext(ctx).
		Model(&Comment{}).
		Where("id = ?", commentID).
		Update("text", text).Error
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

func (r *Repository) DeleteComment(ctx context.Context, commentID int) error {
	if err := r.db.WithContext(ctx).Delete(&Comment{}, commentID).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (r *Repository) CommentsCount(ctx context.Context) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Comment{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get comments count: %w", err)
	}

	return int(count), nil
}

func (r *Repository) UserByID(ctx context.Context, userID int) (*newsportal.User, error) {
	return r.oneUser(ctx, "id = ?", userID)
}

func (r *Repository) UserByUsername(ctx context.Context, username string) (*newsportal.User, error) {
	return r.oneUser(ctx, "username = ?", username)
}

func (r *Repository) oneUser(ctx context.Context, condition string, param interface{}) (*newsportal.User, error) {
	var row User
	res := r.db.WithContext(ctx).Limit(1).Find(&row, condition, param)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to get user: %w", res.Error)
	} else if res.RowsAffected == 0 {
		return nil, nil
	}

	user := row.toPortal()
	return &user, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *newsportal.User) error {
	row := User{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    utcOrNow(user.CreatedAt),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID, user.CreatedAt = row.ID, row.CreatedAt
	return nil
}

func utcOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func (n *News) toPortal() newsportal.News {
	return newsportal.News{
		ID:    n.ID,
		Title: n.Title,
		Text:  n.Text,
		Date:  n.Date,
	}
}

func (c *Comment) toPortal() newsportal.Comment {
	comment := newsportal.Comment{
		ID:       c.ID,
		NewsID:   c.NewsID,
		AuthorID: c.AuthorID,
		Text:     c.Text,
		Created:  c.Created,
	}

	if c.Author != nil {
		comment.Author = c.Author.Username
	}

	return comment
}

func (u *User) toPortal() newsportal.User {
	return newsportal.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}
