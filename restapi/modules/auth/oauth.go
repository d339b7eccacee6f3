package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	stateCookieName = "oauth_state"
	stateMaxAge     = 10 * time.Minute
)

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// DashboardPath is the default authenticated landing page.
const DashboardPath = "/dashboard"

// setStateCookie round-trips the OAuth state value through a short-lived
// cookie so the callback can reject forged redirects.
func setStateCookie(c *fiber.Ctx, state string) {
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		HTTPOnly: true,
		Secure:   false,
		SameSite: "Lax",
		MaxAge:   int(stateMaxAge.Seconds()),
		Path:     "/",
	})
}

func checkStateCookie(c *fiber.Ctx) bool {
	expected := c.Cookies(stateCookieName)
	got := c.Query("state")
	return expected != "" && got == expected
}

// completeOAuthSignIn runs the shared tail of both provider callbacks:
// link the external identity to a local user, shape and sign the token,
// set the cookie, and land on the dashboard.
func completeOAuthSignIn(c *fiber.Ctx, store UserStore, sc SignInContext) error {
	user, err := LinkAccount(c.Context(), store, sc)
	if err != nil {
		return c.Redirect(LoginPath + "?error=signin_failed")
	}

	token, err := IssueSignInToken(user)
	if err != nil {
		return c.Redirect(LoginPath + "?error=signin_failed")
	}

	SetAuthCookie(c, token)
	return c.Redirect(DashboardPath)
}
