package newsportal

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned both for missing rows and for comments the
	// caller does not own.
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	FieldText     = "text"
	FieldUsername = "username"
	FieldPassword = "password"

	MsgRequired         = "Обязательное поле."
	MsgUsernameTaken    = "Пользователь с таким именем уже существует."
	MsgUsernameTooLong  = "Имя пользователя не должно превышать 150 символов."
	MsgPasswordTooShort = "Пароль должен содержать как минимум 8 символов."
)

// ValidationError is a user-correctable form error bound to a single field.
type ValidationError struct {
	Field    string
	Messages []string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + strings.Join(e.Messages, "; ")
}

func newValidationError(field string, messages ...string) *ValidationError {
	return &ValidationError{Field: field, Messages: messages}
}
