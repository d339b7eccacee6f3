package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub-backend/model"
)

func TestShapeToken_SignInCopiesIdentity(t *testing.T) {
	identity := &Identity{
		ID:        "u-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      model.RoleAdmin,
	}

	claims := ShapeToken(TokenIn{Claims: &Claims{}, Identity: identity})
	require.NotNil(t, claims)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestShapeToken_RefreshPassesClaimsThrough(t *testing.T) {
	in := &Claims{
		Role:      model.RoleAdmin,
		FirstName: "Ada",
		Email:     "ada@example.com",
	}
	in.Subject = "u-1"

	out := ShapeToken(TokenIn{Claims: in})
	assert.Same(t, in, out)
	assert.Equal(t, model.RoleAdmin, out.Role)
	assert.Equal(t, "u-1", out.Subject)
}

func TestShapeToken_NilClaims(t *testing.T) {
	out := ShapeToken(TokenIn{})
	require.NotNil(t, out)
	assert.Empty(t, out.Subject)
	assert.Empty(t, out.Role)
}

func TestShapeSession_PopulatesUserFromClaims(t *testing.T) {
	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	claims := &Claims{
		Role:      model.RoleUser,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
	claims.Subject = "u-1"
	claims.ExpiresAt = jwt.NewNumericDate(expires)

	session := ShapeSession(SessionIn{Session: &Session{}, Claims: claims})
	require.NotNil(t, session)
	assert.Equal(t, "u-1", session.User.ID)
	assert.Equal(t, model.RoleUser, session.User.Role)
	assert.Equal(t, "Ada", session.User.FirstName)
	assert.Equal(t, "ada@example.com", session.User.Email)
	assert.True(t, session.Expires.Equal(expires))
}

func TestShapeSession_IncompleteClaimsLeaveUserUnset(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		role    string
	}{
		{"no subject", "", model.RoleUser},
		{"no role", "u-1", ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := &Claims{Role: tt.role}
			claims.Subject = tt.subject

			session := ShapeSession(SessionIn{Session: &Session{}, Claims: claims})
			assert.Empty(t, session.User.ID)
			assert.Empty(t, session.User.Role)
		})
	}
}

func TestShapeSession_NilInputs(t *testing.T) {
	session := ShapeSession(SessionIn{})
	require.NotNil(t, session)
	assert.Empty(t, session.User.ID)
	assert.True(t, session.Expires.IsZero())
}
