package main

import (
	"fmt"

	"oa-portal/config"
	"oa-portal/internal/database"
	"oa-portal/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()
	database.SeedAll(config.DB)

	app := fiber.New()

	// Global middleware
	app.Use(cors.New(cors.Config{
		AllowCredentials: true,
		AllowOriginsFunc: func(origin string) bool { return true },
	}))
	app.Use(logger.New())

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupUserRoutes(app, config.DB)
	routes.SetupLeaveRoutes(app, config.DB)
	routes.SetupAttendanceRoutes(app, config.DB)
	routes.SetupAnnouncementRoutes(app, config.DB)

	addr := ":" + config.GetEnv("PORT", "3000")
	fmt.Println("Server listening on", addr)
	app.Listen(addr)
}
