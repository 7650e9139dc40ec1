package routes

import (
	"oa-portal/internal/handler"
	"oa-portal/internal/middleware"
	"oa-portal/internal/model"
	"oa-portal/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAnnouncementRoutes(app *fiber.App, db *gorm.DB) {
	auth := newAuthUsecase(db)
	hdl := handler.NewAnnouncementHandler(repository.NewAnnouncementRepository(db))

	app.Get("/api/employee/announcement", middleware.Auth(auth), hdl.GetAll)
	app.Post("/api/admin/announcement", middleware.Auth(auth), middleware.Role(model.RoleAdmin), hdl.Create)
}
