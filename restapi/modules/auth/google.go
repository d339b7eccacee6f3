package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/userhub/userhub-backend/internal/config"
	"github.com/userhub/userhub-backend/model"
)

const (
	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleProvider implements the Google OAuth 2.0 sign-in flow.
// Endpoint URLs are overridable for tests.
type GoogleProvider struct {
	Client      config.OAuthClient
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// NewGoogleProvider returns a provider using Google's production endpoints.
func NewGoogleProvider(client config.OAuthClient) *GoogleProvider {
	return &GoogleProvider{
		Client:      client,
		AuthURL:     defaultGoogleAuthURL,
		TokenURL:    defaultGoogleTokenURL,
		UserInfoURL: defaultGoogleUserInfoURL,
	}
}

// LoginURL builds the Google consent URL with email and profile scopes.
func (p *GoogleProvider) LoginURL(state string) string {
	params := url.Values{
		"client_id":     {p.Client.ClientID},
		"redirect_uri":  {p.Client.RedirectURL},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"state":         {state},
	}
	return p.AuthURL + "?" + params.Encode()
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Exchange trades the authorization code for the asserted identity.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*SignInContext, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.Client.ClientID},
		"client_secret": {p.Client.ClientSecret},
		"redirect_uri":  {p.Client.RedirectURL},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp googleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("empty access token in response")
	}

	userInfo, err := p.fetchUserInfo(ctx, tokenResp.AccessToken)
	if err != nil {
		return nil, err
	}

	return &SignInContext{
		Provider:   model.ProviderGoogle,
		Email:      userInfo.Email,
		Name:       userInfo.Name,
		Image:      userInfo.Picture,
		ExternalID: userInfo.Sub,
	}, nil
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user info request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info fetch failed with status %d: %s", resp.StatusCode, string(body))
	}

	var userInfo googleUserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		return nil, fmt.Errorf("failed to parse user info response: %w", err)
	}
	if userInfo.Sub == "" {
		return nil, fmt.Errorf("empty sub in user info response")
	}

	return &userInfo, nil
}

// GoogleLogin redirects to the Google consent screen
func GoogleLogin(provider *GoogleProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := GenerateSecureToken(32)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate state"})
		}
		setStateCookie(c, state)
		return c.Redirect(provider.LoginURL(state))
	}
}

// GoogleCallback handles the redirect back from Google
func GoogleCallback(provider *GoogleProvider, store UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !checkStateCookie(c) {
			return c.Redirect(LoginPath + "?error=invalid_state")
		}

		code := c.Query("code")
		if code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing code"})
		}

		sc, err := provider.Exchange(c.Context(), code)
		if err != nil {
			return c.Redirect(LoginPath + "?error=signin_failed")
		}

		return completeOAuthSignIn(c, store, *sc)
	}
}
