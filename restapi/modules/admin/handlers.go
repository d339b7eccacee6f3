// Package admin implements the settings page and user management handlers.
package admin

import (
	"github.com/gofiber/fiber/v2"

	"github.com/userhub/userhub-backend/model"
	"github.com/userhub/userhub-backend/restapi/modules/auth"
)

// SettingsPage renders the admin user table. The gate is the session cache:
// no session redirects to the login page, a non-admin session redirects to
// the dashboard. Redirects are control flow here, not errors.
func SettingsPage(store auth.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.CurrentSession(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to resolve session")
		}
		if session == nil {
			return c.Redirect(auth.LoginPath)
		}
		if session.User.Role != model.RoleAdmin {
			return c.Redirect(auth.DashboardPath)
		}

		users, err := store.List(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to list users")
		}

		return c.Render("settings", fiber.Map{
			"Users": users,
		})
	}
}

// DeleteUserAction handles the per-row delete form on the settings page.
// Deleting an id that no longer exists is not an error; the next render
// simply lacks the row.
func DeleteUserAction(store auth.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.CurrentSession(c)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString("Failed to resolve session")
		}
		if session == nil {
			return c.Redirect(auth.LoginPath)
		}
		if session.User.Role != model.RoleAdmin {
			return c.Redirect(auth.DashboardPath)
		}

		key := c.Params("key")
		if key != "" && key != session.User.ID {
			if err := store.Delete(c.Context(), key); err != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Failed to delete user")
			}
		}

		return c.Redirect("/private/settings")
	}
}

// ListUsers is the JSON mirror of the settings table
func ListUsers(store auth.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := store.List(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
		}

		userList := make([]fiber.Map, len(users))
		for i, user := range users {
			userList[i] = fiber.Map{
				"_key":          user.Key,
				"first_name":    user.FirstName,
				"last_name":     user.LastName,
				"email":         user.Email,
				"role":          user.Role,
				"auth_provider": user.AuthProvider,
			}
		}

		return c.JSON(fiber.Map{
			"users": userList,
			"total": len(userList),
		})
	}
}

// DeleteUser removes a user by key over the JSON API
func DeleteUser(store auth.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		currentUser, ok := c.Locals("user_id").(string)
		if ok && currentUser == key {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot delete your own account"})
		}

		if err := store.Delete(c.Context(), key); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete user"})
		}

		return c.JSON(fiber.Map{"message": "User deleted successfully"})
	}
}
