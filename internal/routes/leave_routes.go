package routes

import (
	"oa-portal/config"
	"oa-portal/internal/handler"
	"oa-portal/internal/middleware"
	"oa-portal/internal/model"
	"oa-portal/internal/notify"
	"oa-portal/internal/repository"
	"oa-portal/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLeaveRoutes(app *fiber.App, db *gorm.DB) {
	auth := newAuthUsecase(db)
	leaveRepo := repository.NewLeaveRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Mail notifications are optional: no SMTP host, no notifier.
	var notifier usecase.Notifier
	if mailer := notify.NewMailer(
		config.GetEnv("SMTP_HOST", ""),
		config.GetEnvAsInt("SMTP_PORT", 587),
		config.GetEnv("SMTP_USER", ""),
		config.GetEnv("SMTP_PASSWORD", ""),
		config.GetEnv("SMTP_FROM", "noreply@oa-portal.local"),
	); mailer != nil {
		notifier = mailer
	}

	leave := usecase.NewLeaveUsecase(leaveRepo, userRepo, notifier)
	hdl := handler.NewLeaveHandler(leave)

	api := app.Group("/api/employee/leave", middleware.Auth(auth))
	api.Post("/", hdl.Submit)
	api.Get("/my", hdl.My)
	api.Get("/to-approve", hdl.ToApprove)
	api.Post("/:id/approve", hdl.Approve)
	api.Post("/:id/reject", hdl.Reject)

	admin := app.Group("/api/admin/leaves", middleware.Auth(auth), middleware.Role(model.RoleAdmin))
	admin.Get("/pending", hdl.AllPending)
}
