// Package users implements the resolvers for user administration.
package users

import (
	"context"
	"time"

	"github.com/userhub/userhub-backend/model"
	"github.com/userhub/userhub-backend/restapi/modules/auth"
)

func toRow(user *model.User) map[string]interface{} {
	return map[string]interface{}{
		"_key":          user.Key,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"role":          user.Role,
		"auth_provider": user.AuthProvider,
		"created_at":    user.CreatedAt.Format(time.RFC3339),
	}
}

// ResolveUsers returns all users, optionally filtered by role
func ResolveUsers(ctx context.Context, store auth.UserStore, role string) (interface{}, error) {
	users, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(users))
	for _, user := range users {
		if role != "" && user.Role != role {
			continue
		}
		rows = append(rows, toRow(user))
	}
	return rows, nil
}

// ResolveUser returns one user by document key
func ResolveUser(ctx context.Context, store auth.UserStore, key string) (interface{}, error) {
	user, err := store.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return toRow(user), nil
}

// ResolveUserCount returns the per-role totals
func ResolveUserCount(ctx context.Context, store auth.UserStore) (interface{}, error) {
	users, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	admins := 0
	for _, user := range users {
		if user.IsAdmin() {
			admins++
		}
	}

	return map[string]interface{}{
		"total":  len(users),
		"admins": admins,
		"users":  len(users) - admins,
	}, nil
}
