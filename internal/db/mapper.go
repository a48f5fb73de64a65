package db

import "github.com/daniilsolovey/ya-news/internal/newsportal"

func (n *News) ToPortal() newsportal.News {
	return newsportal.News{
		ID:    n.ID,
		Title: n.Title,
		Text:  n.Text,
		Date:  n.Date,
	}
}

func (c *Comment) ToPortal() newsportal.Comment {
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

func (u *User) ToPortal() newsportal.User {
	return newsportal.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func newNews(n *newsportal.News) *News {
	return &News{
		ID:    n.ID,
		Title: n.Title,
		Text:  n.Text,
		Date:  n.Date,
	}
}

func newComment(c *newsportal.Comment) *Comment {
	return &Comment{
		ID:       c.ID,
		NewsID:   c.NewsID,
		AuthorID: c.AuthorID,
		Text:     c.Text,
		Created:  c.Created,
	}
}

func newUser(u *newsportal.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func mapNews(list []News) []newsportal.News {
	result := make([]newsportal.News, len(list))
	for i := range list {
		result[i] = list[i].ToPortal()
	}
	return result
}

func mapComments(list []Comment) []newsportal.Comment {
	result := make([]newsportal.Comment, len(list))
	for i := range list {
		result[i] = list[i].ToPortal()
	}
	return result
}
