// Package model provides data models for userhub-backend.
package model

import (
	"strings"
	"time"
)

// Roles supported by the application.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Auth providers a user record can originate from.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
	ProviderGitHub      = "github"
)

// User represents a user document in the users collection
type User struct {
	Key          string    `json:"_key,omitempty"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         string    `json:"role"` // admin, user
	Image        string    `json:"image,omitempty"`
	AuthProvider string    `json:"auth_provider"`         // credentials, google, github
	ExternalID   string    `json:"external_id,omitempty"` // provider account id for third-party sign-in
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user with default values
func NewUser(email, role string) *User {
	if role == "" {
		role = RoleUser
	}
	now := time.Now()
	return &User{
		Email:        email,
		Role:         role,
		AuthProvider: ProviderCredentials,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin returns true if user is admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword reports whether the account can sign in with credentials.
// Accounts created through a third-party provider may carry no hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// FullName returns the display name for table rendering
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
