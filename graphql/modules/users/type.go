// Package users defines the GraphQL types for user administration.
package users

import (
	"github.com/graphql-go/graphql"
)

// UserType represents a user row for the admin table
var UserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"_key":          &graphql.Field{Type: graphql.String},
		"first_name":    &graphql.Field{Type: graphql.String},
		"last_name":     &graphql.Field{Type: graphql.String},
		"email":         &graphql.Field{Type: graphql.String},
		"role":          &graphql.Field{Type: graphql.String},
		"auth_provider": &graphql.Field{Type: graphql.String},
		"created_at":    &graphql.Field{Type: graphql.String},
	},
})

// UserCountType represents the per-role totals
var UserCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserCount",
	Fields: graphql.Fields{
		"total":  &graphql.Field{Type: graphql.Int},
		"admins": &graphql.Field{Type: graphql.Int},
		"users":  &graphql.Field{Type: graphql.Int},
	},
})
