package rest

import "github.com/daniilsolovey/ya-news/internal/newsportal"

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewNews(n newsportal.News) News {
	return News{
		NewsID: n.ID,
		Title:  n.Title,
		Text:   n.Text,
		Date:   n.Date,
	}
}

func NewComment(c newsportal.Comment) Comment {
	return Comment{
		CommentID: c.ID,
		NewsID:    c.NewsID,
		AuthorID:  c.AuthorID,
		Author:    c.Author,
		Text:      c.Text,
		Created:   c.Created,
	}
}

func NewNewsDetail(d newsportal.NewsDetail) NewsDetail {
	return NewsDetail{
		News:     NewNews(d.News),
		Comments: Map(d.Comments, NewComment),
	}
}

func newFormErrors(ve *newsportal.ValidationError) FormErrors {
	if ve == nil {
		return nil
	}
	return FormErrors{ve.Field: ve.Messages}
}
