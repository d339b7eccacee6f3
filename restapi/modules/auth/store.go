package auth

import (
	"context"

	"github.com/userhub/userhub-backend/model"
)

// UserStore is the storage surface the authentication flow consumes.
// The ArangoDB implementation lives in the database package; tests supply
// in-memory fakes.
type UserStore interface {
	// FindByEmail returns the user with the given email, or nil when absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByKey returns the user with the given document key, or nil when absent.
	FindByKey(ctx context.Context, key string) (*model.User, error)
	// Create inserts a new user document.
	Create(ctx context.Context, user *model.User) error
	// EnsureExternal inserts the user if no document with the same email
	// exists and returns the current document either way, without mutating
	// an existing record.
	EnsureExternal(ctx context.Context, user *model.User) (*model.User, error)
	// Delete removes the user with the given key. Absent keys are not an error.
	Delete(ctx context.Context, key string) error
	// List returns all users.
	List(ctx context.Context) ([]*model.User, error)
}
