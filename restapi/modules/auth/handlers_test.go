package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/userhub-backend/model"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func authCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == AuthCookieName {
			return cookie
		}
	}
	return nil
}

func TestLogin_Success(t *testing.T) {
	user := testUser("u-1", "alice@example.com", model.RoleAdmin, "correct horse")
	store := &mockUserStore{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			return user, nil
		},
	}

	app := fiber.New()
	app.Post("/login", Login(store))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/login",
		`{"email":"alice@example.com","password":"correct horse"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, model.RoleAdmin, body["role"])

	cookie := authCookie(resp)
	require.NotNil(t, cookie, "login must set the auth cookie")
	assert.True(t, cookie.HttpOnly)

	claims, err := ValidateJWT(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestLogin_FormEncodedBody(t *testing.T) {
	user := testUser("u-1", "alice@example.com", model.RoleUser, "correct horse")
	store := &mockUserStore{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			return user, nil
		},
	}

	app := fiber.New()
	app.Post("/login", Login(store))

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader("email=alice%40example.com&password=correct+horse"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, authCookie(resp))
}

func TestLogin_FailureModes(t *testing.T) {
	user := testUser("u-1", "alice@example.com", model.RoleUser, "correct horse")

	tests := []struct {
		name       string
		body       string
		store      *mockUserStore
		wantStatus int
	}{
		{
			name:       "missing password",
			body:       `{"email":"alice@example.com"}`,
			store:      &mockUserStore{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "wrong password",
			body: `{"email":"alice@example.com","password":"nope"}`,
			store: &mockUserStore{
				findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
					return user, nil
				},
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown email",
			body:       `{"email":"ghost@example.com","password":"whatever"}`,
			store:      &mockUserStore{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "store failure",
			body: `{"email":"alice@example.com","password":"correct horse"}`,
			store: &mockUserStore{
				findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
					return nil, errors.New("connection refused")
				},
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/login", Login(tt.store))

			resp, err := app.Test(jsonRequest(http.MethodPost, "/login", tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Nil(t, authCookie(resp), "failed login must not set a cookie")
		})
	}
}

func TestRegister_Success(t *testing.T) {
	var created *model.User
	store := &mockUserStore{
		createFn: func(_ context.Context, user *model.User) error {
			created = user
			return nil
		},
	}

	app := fiber.New()
	app.Post("/register", Register(store))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"longenough"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NotNil(t, created)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.Equal(t, model.ProviderCredentials, created.AuthProvider)
	assert.True(t, CheckPasswordHash("longenough", created.PasswordHash))
}

func TestRegister_Conflict(t *testing.T) {
	store := &mockUserStore{
		findByEmailFn: func(_ context.Context, _ string) (*model.User, error) {
			return testUser("u-1", "ada@example.com", model.RoleUser, "x"), nil
		},
	}

	app := fiber.New()
	app.Post("/register", Register(store))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/register",
		`{"email":"ada@example.com","password":"longenough"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegister_WeakPassword(t *testing.T) {
	app := fiber.New()
	app.Post("/register", Register(&mockUserStore{}))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/register",
		`{"email":"ada@example.com","password":"short"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout_ClearsCookie(t *testing.T) {
	app := fiber.New()
	app.Post("/logout", Logout())

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := authCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0 || !cookie.Expires.IsZero())
}

func TestMe_ReturnsSessionView(t *testing.T) {
	claims := &Claims{Role: model.RoleUser, FirstName: "Ada", Email: "ada@example.com"}
	claims.Subject = "u-1"
	token, err := SignToken(claims)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Me())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u-1", user["id"])
	assert.Equal(t, model.RoleUser, user["role"])
}

func TestMe_Unauthenticated(t *testing.T) {
	app := fiber.New()
	app.Get("/me", Me())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefreshToken_Handler(t *testing.T) {
	claims := &Claims{Role: model.RoleAdmin}
	claims.Subject = "u-1"
	token, err := SignToken(claims)
	require.NoError(t, err)

	app := fiber.New()
	app.Post("/refresh", RefreshToken())

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := authCookie(resp)
	require.NotNil(t, cookie)

	refreshed, err := ValidateJWT(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u-1", refreshed.Subject)
	assert.Equal(t, model.RoleAdmin, refreshed.Role)
}

func TestRefreshToken_NoCookie(t *testing.T) {
	app := fiber.New()
	app.Post("/refresh", RefreshToken())

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/refresh", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIssueSignInToken(t *testing.T) {
	user := testUser("u-5", "eve@example.com", model.RoleUser, "")
	user.AuthProvider = model.ProviderGitHub

	token, err := IssueSignInToken(user)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u-5", claims.Subject)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "eve@example.com", claims.Email)
}
