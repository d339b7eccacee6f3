package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/google/uuid"

	"github.com/userhub/userhub-backend/model"
)

// UserStore runs the user document operations against ArangoDB.
type UserStore struct {
	db DBConnection
}

// NewUserStore returns a UserStore bound to the given connection.
func NewUserStore(db DBConnection) *UserStore {
	return &UserStore{db: db}
}

// FindByEmail returns the user with the given email, or nil when absent.
// Emails compare case-insensitively.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		FOR u IN users
			FILTER LOWER(u.email) == LOWER(@email)
			LIMIT 1
			RETURN u
	`
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"email": email},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByKey returns the user with the given document key, or nil when absent.
func (s *UserStore) FindByKey(ctx context.Context, key string) (*model.User, error) {
	query := `
		FOR u IN users
			FILTER u._key == @key
			LIMIT 1
			RETURN u
	`
	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, nil
	}

	var user model.User
	if _, err := cursor.ReadDocument(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user document. A unique-index violation on email is
// reported as a conflict.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	if user.Key == "" {
		user.Key = uuid.New().String()
	}

	query := `
		INSERT {
			_key: @key,
			first_name: @first_name,
			last_name: @last_name,
			email: @email,
			password_hash: @password_hash,
			role: @role,
			image: @image,
			auth_provider: @auth_provider,
			external_id: @external_id,
			created_at: @created_at,
			updated_at: @updated_at
		} INTO users
	`
	bindVars := map[string]interface{}{
		"key":           user.Key,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"image":         user.Image,
		"auth_provider": user.AuthProvider,
		"external_id":   user.ExternalID,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil && isUniqueViolation(err) {
		return fmt.Errorf("email already in use: %w", err)
	}
	return err
}

// EnsureExternal inserts a user for a third-party identity if no document
// with the same email exists, and returns the current document either way.
// The UPDATE arm is a no-op so a repeat sign-in never mutates the record.
func (s *UserStore) EnsureExternal(ctx context.Context, user *model.User) (*model.User, error) {
	if user.Key == "" {
		user.Key = uuid.New().String()
	}

	query := `
		UPSERT { email: @email }
		INSERT {
			_key: @key,
			first_name: @first_name,
			last_name: @last_name,
			email: @email,
			role: @role,
			image: @image,
			auth_provider: @auth_provider,
			external_id: @external_id,
			created_at: @created_at,
			updated_at: @updated_at
		}
		UPDATE {} IN users
		RETURN NEW
	`
	bindVars := map[string]interface{}{
		"key":           user.Key,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"role":          user.Role,
		"image":         user.Image,
		"auth_provider": user.AuthProvider,
		"external_id":   user.ExternalID,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	cursor, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var current model.User
	if _, err := cursor.ReadDocument(ctx, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

// Delete removes the user with the given key. Removing an absent key matches
// zero documents and is not an error.
func (s *UserStore) Delete(ctx context.Context, key string) error {
	query := `
		FOR u IN users
			FILTER u._key == @key
			REMOVE u IN users
	`
	_, err := s.db.Database.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"key": key},
	})
	return err
}

// List returns all users ordered by creation time.
func (s *UserStore) List(ctx context.Context) ([]*model.User, error) {
	query := `
		FOR u IN users
			SORT u.created_at ASC
			RETURN u
	`
	cursor, err := s.db.Database.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var users []*model.User
	for cursor.HasMore() {
		var user model.User
		if _, err := cursor.ReadDocument(ctx, &user); err == nil {
			users = append(users, &user)
		}
	}
	return users, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "unique constraint")
}
