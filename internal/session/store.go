// Package session implements the server-held session store. A session is
// addressed by an opaque uuid token; the token is the only thing the client
// ever holds.
package session

import (
	"errors"
	"fmt"
	"time"

	"oa-portal/internal/apperr"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	repo repository.SessionRepository
	ttl  time.Duration
}

func NewStore(repo repository.SessionRepository, ttl time.Duration) *Store {
	return &Store{repo: repo, ttl: ttl}
}

// Issue creates a fresh session for the user and returns its token. Other
// sessions of the same user are untouched; concurrent logins are allowed.
func (s *Store) Issue(userID uint) (string, error) {
	sess := model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.repo.Create(&sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.Token, nil
}

// Resolve returns the user id behind a token. Missing, unknown and expired
// tokens all come back as ErrUnauthenticated. Read-only: an expired row is
// left for PurgeExpired rather than deleted here.
func (s *Store) Resolve(token string) (uint, error) {
	if token == "" {
		return 0, apperr.ErrUnauthenticated
	}
	sess, err := s.repo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.ErrUnauthenticated
		}
		return 0, fmt.Errorf("resolve session: %w", err)
	}
	if sess.Expired(time.Now()) {
		return 0, apperr.ErrUnauthenticated
	}
	return sess.UserID, nil
}

// Revoke invalidates a token. Revoking an unknown or already-revoked token
// is not an error.
func (s *Store) Revoke(token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteByToken(token)
}

// PurgeExpired drops expired rows; called opportunistically at login.
func (s *Store) PurgeExpired() error {
	return s.repo.DeleteExpired(time.Now())
}
