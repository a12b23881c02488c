package users

import (
	"context"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("user record not found")
	ErrDuplicateEmail = errors.New("user email already stored")
)

type Repository interface {
	// Create devuelve ErrDuplicateEmail si el email (case-insensitive) ya existe.
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
