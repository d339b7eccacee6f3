package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"

	gqlschema "github.com/userhub/userhub-backend/graphql"
	"github.com/userhub/userhub-backend/internal/config"
	"github.com/userhub/userhub-backend/restapi"
	"github.com/userhub/userhub-backend/restapi/modules/auth"
	"github.com/userhub/userhub-backend/views"
)

// NewFiberApp creates and configures a Fiber app with pages, REST and GraphQL routes
func NewFiberApp(store auth.UserStore, cfg *config.Config) *fiber.App {
	schema, err := gqlschema.CreateSchema(store)
	if err != nil {
		log.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "userhub-backend API v1.0",
		Views:       views.Engine(),
		ReadTimeout: 30 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		AllowMethods:     "GET, POST, HEAD, PUT, DELETE, PATCH, OPTIONS",
	}))
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	restapi.SetupRoutes(app, store, cfg, schema)

	return app
}
