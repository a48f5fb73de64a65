package newsportal

import "context"

// Store is the content store. Lookups by id return nil, nil when the row does
// not exist. Create methods fill in generated ids.
type Store interface {
	// LatestNews returns at most limit news ordered by date desc, id desc.
	LatestNews(ctx context.Context, limit int) ([]News, error)
	NewsByID(ctx context.Context, newsID int) (*News, error)
	CreateNews(ctx context.Context, news *News) error

	// CommentsByNews returns all comments of a news item ordered by created asc, id asc.
	CommentsByNews(ctx context.Context, newsID int) ([]Comment, error)
	CommentByID(ctx context.Context, commentID int) (*Comment, error)
	CreateComment(ctx context.Context, comment *Comment) error
	UpdateCommentText(ctx context.Context, commentID int, text string) error
	DeleteComment(ctx context.Context, commentID int) error
	CommentsCount(ctx context.Context) (int, error)

	UserByID(ctx context.Context, userID int) (*User, error)
	UserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
}
