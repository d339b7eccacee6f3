// Package users defines the GraphQL queries for user administration.
package users

import (
	"github.com/graphql-go/graphql"

	"github.com/userhub/userhub-backend/restapi/modules/auth"
)

// GetQueryFields returns the user queries to be mounted in the root schema
func GetQueryFields(store auth.UserStore) graphql.Fields {
	return graphql.Fields{
		"users": &graphql.Field{
			Type: graphql.NewList(UserType),
			Args: graphql.FieldConfigArgument{
				"role": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				role, _ := p.Args["role"].(string)
				return ResolveUsers(p.Context, store, role)
			},
		},
		"user": &graphql.Field{
			Type: UserType,
			Args: graphql.FieldConfigArgument{
				"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				key := p.Args["key"].(string)
				return ResolveUser(p.Context, store, key)
			},
		},
		"userCount": &graphql.Field{
			Type: UserCountType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveUserCount(p.Context, store)
			},
		},
	}
}
