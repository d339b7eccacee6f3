package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/userhub/userhub-backend/internal/config"
	"github.com/userhub/userhub-backend/model"
)

const (
	defaultGitHubAuthURL  = "https://github.com/login/oauth/authorize"
	defaultGitHubTokenURL = "https://github.com/login/oauth/access_token"
	defaultGitHubUserURL  = "https://api.github.com/user"
)

// GitHubProvider implements the GitHub OAuth sign-in flow.
// Endpoint URLs are overridable for tests.
type GitHubProvider struct {
	Client   config.OAuthClient
	AuthURL  string
	TokenURL string
	UserURL  string
}

// NewGitHubProvider returns a provider using GitHub's production endpoints.
func NewGitHubProvider(client config.OAuthClient) *GitHubProvider {
	return &GitHubProvider{
		Client:   client,
		AuthURL:  defaultGitHubAuthURL,
		TokenURL: defaultGitHubTokenURL,
		UserURL:  defaultGitHubUserURL,
	}
}

// LoginURL builds the GitHub authorize URL with the user:email scope.
func (p *GitHubProvider) LoginURL(state string) string {
	params := url.Values{
		"client_id":    {p.Client.ClientID},
		"redirect_uri": {p.Client.RedirectURL},
		"scope":        {"read:user user:email"},
		"state":        {state},
	}
	return p.AuthURL + "?" + params.Encode()
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

// Exchange trades the authorization code for the asserted identity.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*SignInContext, error) {
	reqBody, _ := json.Marshal(map[string]string{
		"client_id":     p.Client.ClientID,
		"client_secret": p.Client.ClientSecret,
		"code":          code,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	if errMsg, isError := result["error"]; isError {
		return nil, fmt.Errorf("github error: %v", errMsg)
	}

	accessToken, ok := result["access_token"].(string)
	if !ok || accessToken == "" {
		return nil, fmt.Errorf("failed to get access token")
	}

	user, err := p.fetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	name := user.Name
	if name == "" {
		name = user.Login
	}

	return &SignInContext{
		Provider:   model.ProviderGitHub,
		Email:      user.Email,
		Name:       name,
		Image:      user.AvatarURL,
		ExternalID: fmt.Sprintf("%d", user.ID),
	}, nil
}

func (p *GitHubProvider) fetchUser(ctx context.Context, accessToken string) (*githubUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user fetch failed with status %d", resp.StatusCode)
	}

	var user githubUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}

	if user.Email == "" {
		// The public profile may hide the email; sign-in needs one to key
		// the local record.
		return nil, fmt.Errorf("github profile has no public email")
	}

	return &user, nil
}

// GitHubLogin redirects to the GitHub authorize screen
func GitHubLogin(provider *GitHubProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state, err := GenerateSecureToken(32)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate state"})
		}
		setStateCookie(c, state)
		return c.Redirect(provider.LoginURL(state))
	}
}

// GitHubCallback handles the callback from GitHub
func GitHubCallback(provider *GitHubProvider, store UserStore) fiber.Handler {
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
