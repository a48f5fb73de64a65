package rpc

import "github.com/daniilsolovey/ya-news/internal/newsportal"

func NewNews(n newsportal.News) News {
	return News{
		NewsID: n.ID,
		Title:  n.Title,
		Text:   n.Text,
		Date:   n.Date,
	}
}

func NewNewsList(list newsportal.NewsList) []News {
	result := make([]News, len(list))
	for i := range list {
		result[i] = NewNews(list[i])
	}
	return result
}

func NewComment(c newsportal.Comment) Comment {
	return Comment{
		CommentID: c.ID,
		Author:    c.Author,
		Text:      c.Text,
		Created:   c.Created,
	}
}

func NewNewsDetail(d newsportal.NewsDetail) NewsDetail {
	comments := make([]Comment, len(d.Comments))
	for i := range d.Comments {
		comments[i] = NewComment(d.Comments[i])
	}

	return NewsDetail{
		News:     NewNews(d.News),
		Comments: comments,
	}
}
