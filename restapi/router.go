// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	gql "github.com/graphql-go/graphql"

	"github.com/userhub/userhub-backend/internal/config"
	"github.com/userhub/userhub-backend/model"
	"github.com/userhub/userhub-backend/restapi/modules/admin"
	"github.com/userhub/userhub-backend/restapi/modules/auth"
)

// SetupRoutes configures the pages, the REST API, and the GraphQL endpoint.
func SetupRoutes(app *fiber.App, store auth.UserStore, cfg *config.Config, schema gql.Schema) {

	// Background initialization tasks
	go func() {
		if err := auth.BootstrapAdmin(context.Background(), store, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Printf("WARNING: Failed to bootstrap admin: %v", err)
		}
	}()

	if cfg.SeedPath != "" {
		go applySeedOnStartup(store, cfg.SeedPath)
	}

	// Pages
	app.Get("/login", func(c *fiber.Ctx) error {
		return c.Render("login", fiber.Map{})
	})
	app.Get("/dashboard", func(c *fiber.Ctx) error {
		session, err := auth.CurrentSession(c)
		if err != nil || session == nil {
			return c.Redirect(auth.LoginPath)
		}
		return c.Render("dashboard", fiber.Map{
			"Name": session.User.FirstName,
		})
	})
	app.Get("/private/settings", admin.SettingsPage(store))
	app.Post("/private/settings/users/:key/delete", admin.DeleteUserAction(store))

	// API Group /api/v1
	api := app.Group("/api/v1")

	// GraphQL Route (admin-gated read surface)
	api.Post("/graphql", auth.RequireAuth, auth.RequireRole(model.RoleAdmin), GraphQLHandler(schema))

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", auth.Login(store))
	authGroup.Post("/logout", auth.Logout())
	authGroup.Post("/register", auth.Register(store))
	authGroup.Get("/me", auth.Me())
	authGroup.Post("/refresh", auth.RefreshToken())

	// Third-party sign-in routes, mounted only for configured providers
	if client, ok := cfg.Provider(model.ProviderGoogle); ok {
		provider := auth.NewGoogleProvider(client)
		authGroup.Get("/google/login", auth.GoogleLogin(provider))
		authGroup.Get("/google/callback", auth.GoogleCallback(provider, store))
	}
	if client, ok := cfg.Provider(model.ProviderGitHub); ok {
		provider := auth.NewGitHubProvider(client)
		authGroup.Get("/github/login", auth.GitHubLogin(provider))
		authGroup.Get("/github/callback", auth.GitHubCallback(provider, store))
	}

	// User Management (Admin)
	userGroup := api.Group("/users", auth.RequireAuth, auth.RequireRole(model.RoleAdmin))
	userGroup.Get("/", admin.ListUsers(store))
	userGroup.Delete("/:key", admin.DeleteUser(store))

	log.Println("API routes initialized successfully")
}

func applySeedOnStartup(store auth.UserStore, path string) {
	seed, err := auth.LoadSeedConfig(path)
	if err != nil {
		log.Printf("WARNING: Failed to load seed config: %v", err)
		return
	}

	result, err := auth.ApplySeed(context.Background(), store, seed)
	if err != nil {
		log.Printf("WARNING: Seed apply failed: %v", err)
		return
	}

	log.Printf("Seed apply complete: %d created, %d skipped, %d errors",
		len(result.Created), len(result.Skipped), len(result.Errors))
}
