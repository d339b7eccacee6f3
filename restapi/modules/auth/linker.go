package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/userhub/userhub-backend/model"
)

// LinkAccount decides whether a sign-in may proceed and, for third-party
// providers, ensures a local user record exists for the asserted identity.
//
// The credentials provider is approved unconditionally; trust was already
// gated by AuthorizeCredentials. For google and github the record is created
// on first sign-in and left untouched on every later one. Any other provider
// name denies the sign-in.
func LinkAccount(ctx context.Context, store UserStore, sc SignInContext) (*model.User, error) {
	switch sc.Provider {
	case model.ProviderCredentials:
		return nil, nil

	case model.ProviderGoogle, model.ProviderGitHub:
		return ensureLocalUser(ctx, store, sc)

	default:
		return nil, ErrUnauthorizedProvider
	}
}

func ensureLocalUser(ctx context.Context, store UserStore, sc SignInContext) (*model.User, error) {
	first, last := splitName(sc.Name)

	candidate := model.NewUser(sc.Email, model.RoleUser)
	candidate.FirstName = first
	candidate.LastName = last
	candidate.Image = sc.Image
	candidate.AuthProvider = sc.Provider
	candidate.ExternalID = sc.ExternalID

	// Upsert keyed on email: concurrent first logins converge on one
	// document and an existing record is returned unmodified.
	user, err := store.EnsureExternal(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLinkingFailure, err)
	}

	return user, nil
}

// splitName breaks a provider-asserted display name into first and last.
// Everything after the first space lands in the last name.
func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
