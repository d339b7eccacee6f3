// Package auth provides authentication handlers for Fiber.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/userhub/userhub-backend/model"
)

// ============================================================================
// AUTH HANDLERS
// ============================================================================

// Login handles credential login and sets the auth cookie
func Login(store UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		ctx := c.Context()

		identity, err := AuthorizeCredentials(ctx, store, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, ErrInvalidCredentials):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Sign-in failed"})
			}
		}

		// Credentials provider: the linker approves without touching storage.
		if _, err := LinkAccount(ctx, store, SignInContext{
			Provider: model.ProviderCredentials,
			Email:    identity.Email,
		}); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}

		token, err := SignToken(ShapeToken(TokenIn{Claims: &Claims{}, Identity: identity}))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate token"})
		}

		SetAuthCookie(c, token)

		return c.JSON(fiber.Map{
			"message":    "Login successful",
			"email":      identity.Email,
			"first_name": identity.FirstName,
			"last_name":  identity.LastName,
			"role":       identity.Role,
		})
	}
}

// Register handles credential registration
func Register(store UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email and password are required"})
		}

		if err := ValidatePasswordStrength(req.Password); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		ctx := c.Context()

		existing, err := store.FindByEmail(ctx, req.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}
		if existing != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already in use"})
		}

		passwordHash, err := HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}

		user := model.NewUser(req.Email, model.RoleUser)
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.PasswordHash = passwordHash

		if err := store.Create(ctx, user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "User created successfully",
			"user": fiber.Map{
				"email":      user.Email,
				"first_name": user.FirstName,
				"last_name":  user.LastName,
				"role":       user.Role,
			},
		})
	}
}

// Logout clears the auth cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ClearAuthCookie(c)
		return c.JSON(fiber.Map{"message": "Logged out successfully"})
	}
}

// Me returns the current session view
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := CurrentSession(c)
		if err != nil || session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		return c.JSON(session)
	}
}

// RefreshToken re-signs the current token with a fresh expiration. The role
// claim captured at sign-in is carried forward unchanged.
func RefreshToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		oldToken := c.Cookies(AuthCookieName)
		if oldToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No token to refresh"})
		}

		newToken, err := RefreshJWT(oldToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		SetAuthCookie(c, newToken)
		return c.JSON(fiber.Map{"message": "Token refreshed successfully"})
	}
}

// IssueSignInToken shapes and signs a token for a freshly linked user.
// Shared by the OAuth callbacks.
func IssueSignInToken(user *model.User) (string, error) {
	identity := identityOf(user)
	return SignToken(ShapeToken(TokenIn{Claims: &Claims{}, Identity: identity}))
}
