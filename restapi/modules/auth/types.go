// Package auth provides authentication and authorization types for the REST API.
package auth

// LoginRequest defines the body for credential login. The login page posts
// a form; the API accepts JSON.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest defines the body for credential registration
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
}

// Identity is the normalized result of a successful credential check,
// the input to token shaping.
type Identity struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// SignInContext carries the attributes a provider asserts about the person
// signing in. For credential sign-in only Provider and Email are set.
type SignInContext struct {
	Provider   string
	Email      string
	Name       string
	Image      string
	ExternalID string
}
