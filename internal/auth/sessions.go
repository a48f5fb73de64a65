// Package auth keeps the logged-in principal in a signed session cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daniilsolovey/ya-news/internal/newsportal"
)

var ErrInvalidSession = errors.New("invalid session")

type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	now        func() time.Time
}

func NewSessions(secret string, ttl time.Duration, cookieName string) *Sessions {
	return &Sessions{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		now:        time.Now,
	}
}

func (s *Sessions) CookieName() string {
	return s.cookieName
}

func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

func (s *Sessions) Issue(p *newsportal.Principal) (string, error) {
	if !p.Authenticated() {
		return "", newsportal.ErrUnauthenticated
	}

	now := s.now()
	claims := &Claims{
		UserID:   p.ID,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	return token, nil
}

// Parse returns the principal carried by a valid, unexpired token.
func (s *Sessions) Parse(tokenStr string) (*newsportal.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}

	return &newsportal.Principal{ID: claims.UserID, Username: claims.Username}, nil
}
