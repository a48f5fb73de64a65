package rest

import "time"

type News struct {
	NewsID int       `json:"newsId"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
}

type Comment struct {
	CommentID int       `json:"commentId"`
	NewsID    int       `json:"newsId"`
	AuthorID  int       `json:"authorId"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Created   time.Time `json:"created"`
}

type NewsDetail struct {
	News
	Comments []Comment `json:"comments"`
}

// FormErrors maps a field name to its messages.
type FormErrors map[string][]string

type CommentForm struct {
	Text   string     `json:"text"`
	Errors FormErrors `json:"errors,omitempty"`
}

type LoginForm struct {
	Username string     `json:"username"`
	Next     string     `json:"next,omitempty"`
	Errors   FormErrors `json:"errors,omitempty"`
}

type SignupForm struct {
	Username string     `json:"username"`
	Errors   FormErrors `json:"errors,omitempty"`
}

// HomeContext is the home page document.
type HomeContext struct {
	ObjectList []News `json:"object_list"`
}

// DetailContext is the news page document. Form is present only for
// authenticated readers.
type DetailContext struct {
	News NewsDetail   `json:"news"`
	Form *CommentForm `json:"form,omitempty"`
}

// CommentContext backs the edit and delete confirmation pages.
type CommentContext struct {
	Comment Comment      `json:"comment"`
	Form    *CommentForm `json:"form,omitempty"`
}

type LoginContext struct {
	Form LoginForm `json:"form"`
}

type SignupContext struct {
	Form SignupForm `json:"form"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type commentRequest struct {
	Text string `form:"text" json:"text"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
	Next     string `form:"next" json:"next" query:"next"`
}

type signupRequest struct {
	Username  string `form:"username" json:"username"`
	Password1 string `form:"password1" json:"password1"`
	Password2 string `form:"password2" json:"password2"`
}
