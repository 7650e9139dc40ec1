// One-shot seeding command: connects, migrates and seeds, then exits.
// The API server also seeds on boot; this exists for provisioning a fresh
// database without starting the server.
package main

import (
	"fmt"

	"oa-portal/config"
	"oa-portal/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()
	database.SeedAll(config.DB)
	fmt.Println("Seeding complete.")
}
