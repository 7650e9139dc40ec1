package routes

import (
	"oa-portal/internal/handler"
	"oa-portal/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	auth := newAuthUsecase(db)
	hdl := handler.NewAuthHandler(auth, sessionTTL())

	api := app.Group("/api/auth")
	api.Post("/login", hdl.Login)
	api.Get("/me", middleware.Auth(auth), hdl.Me)
	// Logout is deliberately outside Auth so an expired session can still
	// log out cleanly.
	api.Post("/logout", hdl.Logout)
}
