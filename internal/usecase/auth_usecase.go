package usecase

import (
	"errors"
	"fmt"

	"oa-portal/internal/apperr"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"
	"oa-portal/internal/session"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase struct {
	users    repository.UserRepository
	sessions *session.Store
}

func NewAuthUsecase(users repository.UserRepository, sessions *session.Store) *AuthUsecase {
	return &AuthUsecase{users: users, sessions: sessions}
}

// Login checks the credentials and issues a fresh session token. Unknown
// username and wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(username, password string) (*model.User, string, error) {
	user, err := u.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, "", apperr.ErrAccountInactive
	}

	// Housekeeping: stale sessions are swept here instead of per request so
	// Resolve stays read-only.
	_ = u.sessions.PurgeExpired()

	token, err := u.sessions.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Resolve is the rehydration call: token in, identity and role set out.
// Side-effect free and idempotent.
func (u *AuthUsecase) Resolve(token string) (*model.User, error) {
	userID, err := u.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	user, err := u.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The user behind the session was deleted; the session is dead.
			return nil, apperr.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user, nil
}

// Logout revokes the token. Idempotent: revoking a token that never existed
// or was already revoked succeeds.
func (u *AuthUsecase) Logout(token string) error {
	return u.sessions.Revoke(token)
}
