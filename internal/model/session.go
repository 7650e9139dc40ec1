package model

import (
	"time"

	"gorm.io/gorm"
)

// Session is the server-held record behind the opaque cookie token. It is
// the sole source of truth for "who is logged in"; the client never stores
// identity data beyond the token itself.
type Session struct {
	gorm.Model
	Token     string    `json:"-" gorm:"unique;not null"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
