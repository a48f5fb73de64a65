package newsportal

import "strings"

const (
	DefaultNewsCountOnHomePage = 10
	DefaultWarning             = "Не ругайтесь!"
)

var DefaultBadWords = []string{"редиска", "негодяй"}

// Moderator rejects comment text containing any banned word.
type Moderator struct {
	badWords []string
	warning  string
}

func NewModerator(badWords []string, warning string) *Moderator {
	words := make([]string, 0, len(badWords))
	for _, w := range badWords {
		if w != "" {
			words = append(words, w)
		}
	}

	return &Moderator{
		badWords: words,
		warning:  warning,
	}
}

func (m *Moderator) Warning() string {
	return m.warning
}

// Validate matches banned words as plain, case sensitive substrings: a banned
// word anywhere inside the text rejects it, word boundaries are not checked.
func (m *Moderator) Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return newValidationError(FieldText, MsgRequired)
	}

	for _, word := range m.badWords {
		if strings.Contains(text, word) {
			return newValidationError(FieldText, m.warning)
		}
	}

	return nil
}

// Authorize decides whether principal may edit or delete comment.
// A comment owned by somebody else is reported as ErrNotFound, the same as a
// comment that does not exist.
func Authorize(comment *Comment, principal *Principal) error {
	if !principal.Authenticated() {
		return ErrUnauthenticated
	}

	if comment == nil || comment.AuthorID != principal.ID {
		return ErrNotFound
	}

	return nil
}
