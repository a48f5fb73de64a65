package newsportal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
)

type Manager struct {
	db        Store
	moderator *Moderator
	newsCount int
	now       func() time.Time
}

func NewManager(store Store, moderator *Moderator, newsCount int) *Manager {
	return &Manager{
		db:        store,
		moderator: moderator,
		newsCount: newsCount,
		now:       time.Now,
	}
}

func (u *Manager) NewsCountOnHomePage() int {
	return u.newsCount
}

func (u *Manager) Moderator() *Moderator {
	return u.moderator
}

// HomeNews returns the home page listing: at most NewsCountOnHomePage items,
// most recent first.
func (u *Manager) HomeNews(ctx context.Context) (NewsList, error) {
	list, err := u.db.LatestNews(ctx, u.newsCount)
	if err != nil {
		return nil, fmt.Errorf("db get latest news: %w", err)
	}

	return NewsList(list).Latest(u.newsCount), nil
}

func (u *Manager) NewsDetail(ctx context.Context, newsID int) (*NewsDetail, error) {
	news, err := u.db.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("db get news by id: %w", err)
	} else if news == nil {
		return nil, ErrNotFound
	}

	comments, err := u.db.CommentsByNews(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	return &NewsDetail{
		News:     *news,
		Comments: Comments(comments).Chronological(),
	}, nil
}

// PublishNews stores a news item, dating it now unless a date is given.
func (u *Manager) PublishNews(ctx context.Context, news *News) error {
	if strings.TrimSpace(news.Title) == "" {
		return newValidationError("title", MsgRequired)
	}

	if news.Date.IsZero() {
		news.Date = u.now()
	}

	if err := u.db.CreateNews(ctx, news); err != nil {
		return fmt.Errorf("db create news: %w", err)
	}

	return nil
}

func (u *Manager) CreateComment(ctx context.Context, newsID int, principal *Principal, text string) (*Comment, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}

	news, err := u.db.NewsByID(ctx, newsID)
	if err != nil {
		return nil, fmt.Errorf("db get news by id: %w", err)
	} else if news == nil {
		return nil, ErrNotFound
	}

	if err := u.moderator.Validate(text); err != nil {
		return nil, err
	}

	comment := &Comment{
		NewsID:   news.ID,
		AuthorID: principal.ID,
		Author:   principal.Username,
		Text:     text,
		Created:  u.now(),
	}
	if err := u.db.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("db create comment: %w", err)
	}

	return comment, nil
}

// CommentForEdit returns the comment only when principal owns it.
func (u *Manager) CommentForEdit(ctx context.Context, commentID int, principal *Principal) (*Comment, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}

	comment, err := u.db.CommentByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("db get comment by id: %w", err)
	}

	if err := Authorize(comment, principal); err != nil {
		return nil, err
	}

	return comment, nil
}

// EditComment checks ownership before moderation, so a foreign comment is
// reported as not found whatever the submitted text is.
func (u *Manager) EditComment(ctx context.Context, commentID int, principal *Principal, text string) (*Comment, error) {
	comment, err := u.CommentForEdit(ctx, commentID, principal)
	if err != nil {
		return nil, err
	}

	if err := u.moderator.Validate(text); err != nil {
		return comment, err
	}

	if err := u.db.UpdateCommentText(ctx, comment.ID, text); err != nil {
		return nil, fmt.Errorf("db update comment: %w", err)
	}
	comment.Text = text

	return comment, nil
}

// DeleteComment removes the comment and returns it as it was before removal.
func (u *Manager) DeleteComment(ctx context.Context, commentID int, principal *Principal) (*Comment, error) {
	comment, err := u.CommentForEdit(ctx, commentID, principal)
	if err != nil {
		return nil, err
	}

	if err := u.db.DeleteComment(ctx, comment.ID); err != nil {
		return nil, fmt.Errorf("db delete comment: %w", err)
	}

	return comment, nil
}

func (u *Manager) CommentsCount(ctx context.Context) (int, error) {
	count, err := u.db.CommentsCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("db get comments count: %w", err)
	}

	return count, nil
}

func (u *Manager) Signup(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return nil, newValidationError(FieldUsername, MsgRequired)
	case utf8.RuneCountInString(username) > maxUsernameLength:
		return nil, newValidationError(FieldUsername, MsgUsernameTooLong)
	case password == "":
		return nil, newValidationError(FieldPassword, MsgRequired)
	case utf8.RuneCountInString(password) < minPasswordLength:
		return nil, newValidationError(FieldPassword, MsgPasswordTooShort)
	}

	existing, err := u.db.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("db get user by username: %w", err)
	} else if existing != nil {
		return nil, newValidationError(FieldUsername, MsgUsernameTaken)
	}

	user := &User{Username: username, CreatedAt: u.now()}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := u.db.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("db create user: %w", err)
	}

	return user, nil
}

func (u *Manager) Authenticate(ctx context.Context, username, password string) (*Principal, error) {
	user, err := u.db.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("db get user by username: %w", err)
	}

	if user == nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return user.Principal(), nil
}

func (u *Manager) UserByID(ctx context.Context, userID int) (*User, error) {
	user, err := u.db.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("db get user by id: %w", err)
	} else if user == nil {
		return nil, ErrNotFound
	}

	return user, nil
}

// IsValidation reports whether err is a user-correctable form error.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
