package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, in InsertUser) (*User, error)
}

// SeedAdmin creates the admin account unless a user with that name exists.
func SeedAdmin(ctx context.Context, store UserStore, username, password string, logger *zap.Logger) (*User, error) {
	existing, err := store.GetUserByUsername(ctx, username)
	if err == nil {
		logger.Info("Admin user already exists", zap.String("username", username))
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	user, err := store.CreateUser(ctx, InsertUser{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	logger.Info("Admin user created successfully", zap.String("username", username), zap.String("user_id", user.ID))
	return user, nil
}
