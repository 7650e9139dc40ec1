package routes

import (
	"time"

	"oa-portal/config"
	"oa-portal/internal/repository"
	"oa-portal/internal/session"
	"oa-portal/internal/usecase"

	"gorm.io/gorm"
)

// sessionTTL reads the configured session lifetime.
func sessionTTL() time.Duration {
	return time.Duration(config.GetEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour
}

// newAuthUsecase builds the auth stack each route group mounts behind.
func newAuthUsecase(db *gorm.DB) *usecase.AuthUsecase {
	store := session.NewStore(repository.NewSessionRepository(db), sessionTTL())
	return usecase.NewAuthUsecase(repository.NewUserRepository(db), store)
}
