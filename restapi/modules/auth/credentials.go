package auth

import (
	"context"
	"fmt"

	"github.com/userhub/userhub-backend/model"
)

// AuthorizeCredentials validates an email/password pair against the stored
// user records and returns a normalized identity on success.
//
// Failure modes: missing field -> ErrInvalidInput; unknown email, account
// without a password hash (created through a third-party provider), or a
// bcrypt mismatch -> ErrInvalidCredentials. The read is the only side effect;
// there is no lockout or rate limiting here.
func AuthorizeCredentials(ctx context.Context, store UserStore, email, password string) (*Identity, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return identityOf(user), nil
}

func identityOf(user *model.User) *Identity {
	return &Identity{
		ID:        user.Key,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
	}
}
