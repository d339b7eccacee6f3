package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub-backend/model"
)

func TestLinkAccount_CredentialsApprovedWithoutStorage(t *testing.T) {
	store := &mockUserStore{
		ensureExternalFn: func(_ context.Context, _ *model.User) (*model.User, error) {
			t.Fatal("credentials sign-in must not touch storage")
			return nil, nil
		},
	}

	user, err := LinkAccount(context.Background(), store, SignInContext{
		Provider: model.ProviderCredentials,
		Email:    "alice@example.com",
	})
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestLinkAccount_GoogleFirstSignInCreatesUser(t *testing.T) {
	var stored *model.User
	store := &mockUserStore{
		ensureExternalFn: func(_ context.Context, candidate *model.User) (*model.User, error) {
			stored = candidate
			stored.Key = "u-new"
			return stored, nil
		},
	}

	user, err := LinkAccount(context.Background(), store, SignInContext{
		Provider:   model.ProviderGoogle,
		Email:      "carol@gmail.com",
		Name:       "Carol De La Cruz",
		Image:      "https://lh3.example/photo.jpg",
		ExternalID: "google-sub-1",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "u-new", user.Key)
	assert.Equal(t, "carol@gmail.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, model.ProviderGoogle, user.AuthProvider)
	assert.Equal(t, "google-sub-1", user.ExternalID)
	assert.Equal(t, "Carol", user.FirstName)
	assert.Equal(t, "De La Cruz", user.LastName)
	assert.Equal(t, "https://lh3.example/photo.jpg", user.Image)
}

func TestLinkAccount_GitHubReturningUserKeepsExistingRecord(t *testing.T) {
	existing := testUser("u-7", "dave@example.com", model.RoleAdmin, "")
	existing.FirstName = "David"
	store := &mockUserStore{
		ensureExternalFn: func(_ context.Context, _ *model.User) (*model.User, error) {
			return existing, nil
		},
	}

	user, err := LinkAccount(context.Background(), store, SignInContext{
		Provider:   model.ProviderGitHub,
		Email:      "dave@example.com",
		Name:       "Dave",
		ExternalID: "12345",
	})
	require.NoError(t, err)
	// The stored record wins over the provider-asserted attributes.
	assert.Equal(t, "u-7", user.Key)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "David", user.FirstName)
}

func TestLinkAccount_UnknownProviderDenied(t *testing.T) {
	store := &mockUserStore{}

	user, err := LinkAccount(context.Background(), store, SignInContext{
		Provider: "facebook",
		Email:    "eve@example.com",
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnauthorizedProvider)
}

func TestLinkAccount_StoreFailureWrapsLinkingError(t *testing.T) {
	store := &mockUserStore{
		ensureExternalFn: func(_ context.Context, _ *model.User) (*model.User, error) {
			return nil, errors.New("write conflict")
		},
	}

	user, err := LinkAccount(context.Background(), store, SignInContext{
		Provider:   model.ProviderGoogle,
		Email:      "carol@gmail.com",
		ExternalID: "google-sub-1",
	})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrLinkingFailure)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		first string
		last  string
	}{
		{"empty", "", "", ""},
		{"single", "Cher", "Cher", ""},
		{"two parts", "Ada Lovelace", "Ada", "Lovelace"},
		{"multi word last", "Ana Maria Silva", "Ana", "Maria Silva"},
		{"surrounding spaces", "  Ada Lovelace  ", "Ada", "Lovelace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.in)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
