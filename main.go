// package main provides the entry point for the userhub-backend service,
// wiring the configuration, the ArangoDB user store, and the Fiber app.
package main

import (
	"log"

	"github.com/userhub/userhub-backend/database"
	"github.com/userhub/userhub-backend/internal/api"
	"github.com/userhub/userhub-backend/internal/config"
	"github.com/userhub/userhub-backend/restapi/modules/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	auth.SetJWTSecret(cfg.JWTSecret)
	auth.SetTokenMaxAge(cfg.TokenMaxAge)

	// Initialize database connection
	db := database.InitializeDatabase(cfg)
	store := database.NewUserStore(db)

	app := api.NewFiberApp(store, cfg)

	// Start server
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
