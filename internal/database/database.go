package database

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// New connects to SurrealDB, selects the namespace/database pair and
// authenticates as the configured user.
func New(ctx context.Context, url, namespace, name, user, password string) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to surrealdb: %w", err)
	}

	if err := db.Use(ctx, namespace, name); err != nil {
		return nil, fmt.Errorf("selecting database: %w", err)
	}

	token, err := db.SignIn(ctx, surrealdb.Auth{
		Username: user,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}

	if err := db.Authenticate(ctx, token); err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}

	return db, nil
}
