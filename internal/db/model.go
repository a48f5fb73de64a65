// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Comment struct {
		ID, NewsID, AuthorID, Text, Created string

		Author, News string
	}
	News struct {
		ID, Title, Text, Date string
	}
	User struct {
		ID, Username, PasswordHash, CreatedAt string
	}
}{
	Comment: struct {
		ID, NewsID, AuthorID, Text, Created string

		Author, News string
	}{
		ID:       "commentId",
		NewsID:   "newsId",
		AuthorID: "authorId",
		Text:     "text",
		Created:  "created",

		Author: "Author",
		News:   "News",
	},
	News: struct {
		ID, Title, Text, Date string
	}{
		ID:    "newsId",
		Title: "title",
		Text:  "text",
		Date:  "date",
	},
	User: struct {
		ID, Username, PasswordHash, CreatedAt string
	}{
		ID:           "userId",
		Username:     "username",
		PasswordHash: "passwordHash",
		CreatedAt:    "createdAt",
	},
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID       int       `pg:"commentId,pk"`
	NewsID   int       `pg:"newsId,use_zero"`
	AuthorID int       `pg:"authorId,use_zero"`
	Text     string    `pg:"text,use_zero"`
	Created  time.Time `pg:"created,use_zero"`

	Author *User `pg:"fk:authorId,rel:has-one"`
	News   *News `pg:"fk:newsId,rel:has-one"`
}

type News struct {
	tableName struct{} `pg:"news,alias:t,discard_unknown_columns"`

	ID    int       `pg:"newsId,pk"`
	Title string    `pg:"title,use_zero"`
	Text  string    `pg:"text,use_zero"`
	Date  time.Time `pg:"date,use_zero"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           int       `pg:"userId,pk"`
	Username     string    `pg:"username,use_zero"`
	PasswordHash string    `pg:"passwordHash,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
}
