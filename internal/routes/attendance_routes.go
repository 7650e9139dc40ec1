package routes

import (
	"oa-portal/config"
	"oa-portal/internal/handler"
	"oa-portal/internal/middleware"
	"oa-portal/internal/repository"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAttendanceRoutes(app *fiber.App, db *gorm.DB) {
	auth := newAuthUsecase(db)
	attendance := usecase.NewAttendanceUsecase(
		repository.NewAttendanceRepository(db),
		config.GetEnv("WORK_START", "09:00"),
	)
	hdl := handler.NewAttendanceHandler(attendance)

	api := app.Group("/api/employee/attendance", middleware.Auth(auth))
	api.Post("/check-in", hdl.CheckIn)
	api.Post("/check-out", hdl.CheckOut)
	api.Get("/my", hdl.My)
}
