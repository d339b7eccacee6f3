// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// OAuthClient holds the client credentials for one identity provider.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Config is read once at startup and treated as immutable. Provider secrets
// are carried here explicitly instead of being looked up ambiently at the
// point of use.
type Config struct {
	ServerPort string
	BaseURL    string

	JWTSecret   string
	TokenMaxAge time.Duration

	ArangoURL      string
	ArangoUser     string
	ArangoPass     string
	ArangoDatabase string

	// Providers maps a provider name ("google", "github") to its client
	// credentials. Providers without both id and secret are left out.
	Providers map[string]OAuthClient

	// Optional startup reconciliation
	AdminEmail    string
	AdminPassword string
	SeedPath      string
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	return val
}

// Load reads the configuration from the environment. Missing required
// variables are reported together.
func Load() (*Config, error) {
	cfg := &Config{}

	var missing []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %v", missing)
	}

	cfg.ServerPort = GetEnvDefault("MS_PORT", "3000")
	cfg.BaseURL = GetEnvDefault("BASE_URL", "http://localhost:"+cfg.ServerPort)

	maxAgeHours, err := strconv.Atoi(GetEnvDefault("TOKEN_MAX_AGE_HOURS", "24"))
	if err != nil || maxAgeHours <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_MAX_AGE_HOURS: %q", os.Getenv("TOKEN_MAX_AGE_HOURS"))
	}
	cfg.TokenMaxAge = time.Duration(maxAgeHours) * time.Hour

	dbhost := GetEnvDefault("ARANGO_HOST", "localhost")
	dbport := GetEnvDefault("ARANGO_PORT", "8529")
	cfg.ArangoURL = GetEnvDefault("ARANGO_URL", "http://"+dbhost+":"+dbport)
	cfg.ArangoUser = GetEnvDefault("ARANGO_USER", "root")
	cfg.ArangoPass = GetEnvDefault("ARANGO_PASS", "mypassword")
	cfg.ArangoDatabase = GetEnvDefault("ARANGO_DATABASE", "userhub")

	cfg.Providers = loadProviders(cfg.BaseURL)

	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.SeedPath = os.Getenv("SEED_CONFIG_PATH")

	return cfg, nil
}

// loadProviders collects the client id/secret pairs for the recognized
// external identity providers. A provider missing either value is skipped so
// the corresponding sign-in routes can be disabled rather than half-wired.
func loadProviders(baseURL string) map[string]OAuthClient {
	providers := make(map[string]OAuthClient)

	for _, name := range []string{"google", "github"} {
		prefix := map[string]string{
			"google": "GOOGLE",
			"github": "GITHUB",
		}[name]

		id := os.Getenv(prefix + "_CLIENT_ID")
		secret := os.Getenv(prefix + "_CLIENT_SECRET")
		if id == "" || secret == "" {
			continue
		}

		redirect := GetEnvDefault(prefix+"_REDIRECT_URL",
			fmt.Sprintf("%s/api/v1/auth/%s/callback", baseURL, name))

		providers[name] = OAuthClient{
			ClientID:     id,
			ClientSecret: secret,
			RedirectURL:  redirect,
		}
	}

	return providers
}

// Provider returns the client credentials for name, if configured.
func (c *Config) Provider(name string) (OAuthClient, bool) {
	p, ok := c.Providers[name]
	return p, ok
}
