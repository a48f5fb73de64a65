package newsportal

import "time"

type News struct {
	ID    int
	Title string
	Text  string
	Date  time.Time
}

type Comment struct {
	ID       int
	NewsID   int
	AuthorID int
	Author   string
	Text     string
	Created  time.Time
}

type User struct {
	ID           int
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is an authenticated caller. A nil *Principal is an anonymous one.
type Principal struct {
	ID       int
	Username string
}

func (p *Principal) Authenticated() bool {
	return p != nil && p.ID > 0
}

// NewsDetail is a news item together with all of its comments, oldest first.
type NewsDetail struct {
	News
	Comments Comments
}
