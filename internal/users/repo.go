package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user already exists")
)

// Repo is the credential store.
type Repo interface {
	// Create inserts user, failing with ErrEmailTaken when the email exists.
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
}
