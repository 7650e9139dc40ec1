package repository

import (
	"time"

	"oa-portal/internal/model"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	FindByToken(token string) (*model.Session, error)
	DeleteByToken(token string) error
	DeleteExpired(now time.Time) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByToken(token string) (*model.Session, error) {
	var session model.Session
	err := r.db.Where("token = ?", token).First(&session).Error
	return &session, err
}

func (r *sessionRepository) DeleteByToken(token string) error {
	// Hard delete so the token can never resolve again.
	return r.db.Unscoped().Where("token = ?", token).Delete(&model.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(now time.Time) error {
	return r.db.Unscoped().Where("expires_at < ?", now).Delete(&model.Session{}).Error
}
