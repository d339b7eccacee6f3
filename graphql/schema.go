// Package graphql assembles the root schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/userhub/userhub-backend/graphql/modules/users"
	"github.com/userhub/userhub-backend/restapi/modules/auth"
)

// CreateSchema builds the root query schema over the given store
func CreateSchema(store auth.UserStore) (graphql.Schema, error) {
	fields := graphql.Fields{}

	for name, field := range users.GetQueryFields(store) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
