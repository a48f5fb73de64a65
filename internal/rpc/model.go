package rpc

import "time"

type News struct {
	NewsID int       `json:"newsId"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

type Comment struct {
	CommentID int       `json:"commentId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Created   time.Time `json:"created"`
}

type NewsDetail struct {
	News
	Comments []Comment `json:"comments"`
}
