package routes

import (
	"oa-portal/internal/handler"
	"oa-portal/internal/middleware"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupUserRoutes(app *fiber.App, db *gorm.DB) {
	auth := newAuthUsecase(db)
	userRepo := repository.NewUserRepository(db)
	directory := usecase.NewDirectoryUsecase(userRepo, repository.NewLeaveRepository(db))

	profileHdl := handler.NewProfileHandler(userRepo)
	userHdl := handler.NewUserHandler(directory)

	// Self-service profile
	profile := app.Group("/api/profile", middleware.Auth(auth))
	profile.Get("/", profileHdl.Get)
	profile.Put("/", profileHdl.Update)
	profile.Put("/password", profileHdl.ChangePassword)

	// Admin staff management
	admin := app.Group("/api/admin/users", middleware.Auth(auth), middleware.Role(model.RoleAdmin))
	admin.Get("/", userHdl.GetAll)
	admin.Get("/:id", userHdl.GetDetail)
	admin.Post("/", userHdl.Create)
	admin.Put("/:id", userHdl.Update)
	admin.Delete("/:id", userHdl.Delete)

	meta := app.Group("/api/admin/meta", middleware.Auth(auth), middleware.Role(model.RoleAdmin))
	meta.Get("/managers", userHdl.Managers)
}
