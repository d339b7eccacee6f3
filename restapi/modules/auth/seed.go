// Package auth: declarative user seeding applied on startup.
package auth

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/userhub/userhub-backend/model"
)

// SeedConfig represents the YAML structure
type SeedConfig struct {
	Users []SeedUser `yaml:"users"`
}

// SeedUser represents a user in the seed file
type SeedUser struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Role      string `yaml:"role"`
	Password  string `yaml:"password,omitempty"`
}

// SeedResult tracks the outcome of a seed apply operation
type SeedResult struct {
	Created []string
	Skipped []string
	Errors  []string
}

// LoadSeedConfig reads and parses the seed YAML file
func LoadSeedConfig(filepath string) (*SeedConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeedConfig(data)
}

// ParseSeedConfig parses and validates seed YAML content
func ParseSeedConfig(data []byte) (*SeedConfig, error) {
	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSeedConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid seed config: %w", err)
	}

	return &config, nil
}

func validateSeedConfig(config *SeedConfig) error {
	seenEmails := make(map[string]bool)

	for _, user := range config.Users {
		if user.Email == "" {
			return fmt.Errorf("email is required")
		}
		if user.Role != "" && !model.ValidRole(user.Role) {
			return fmt.Errorf("invalid role '%s' for user %s", user.Role, user.Email)
		}
		if seenEmails[user.Email] {
			return fmt.Errorf("duplicate email: %s", user.Email)
		}
		seenEmails[user.Email] = true
	}
	return nil
}

// ApplySeed ensures every seed user exists. Existing records are skipped,
// never updated; the seed is a floor, not a reconciliation.
func ApplySeed(ctx context.Context, store UserStore, config *SeedConfig) (*SeedResult, error) {
	result := &SeedResult{}

	for _, seed := range config.Users {
		existing, err := store.FindByEmail(ctx, seed.Email)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", seed.Email, err))
			continue
		}
		if existing != nil {
			result.Skipped = append(result.Skipped, seed.Email)
			continue
		}

		user := model.NewUser(seed.Email, seed.Role)
		user.FirstName = seed.FirstName
		user.LastName = seed.LastName

		if seed.Password != "" {
			hash, err := HashPassword(seed.Password)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", seed.Email, err))
				continue
			}
			user.PasswordHash = hash
		}

		if err := store.Create(ctx, user); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", seed.Email, err))
			continue
		}
		result.Created = append(result.Created, seed.Email)
	}

	return result, nil
}

// BootstrapAdmin creates the initial admin account from the environment
// configuration when no user with that email exists yet.
func BootstrapAdmin(ctx context.Context, store UserStore, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := store.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.NewUser(email, model.RoleAdmin)
	admin.PasswordHash = hash

	if err := store.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}
