package repository

import (
	"context"
	"errors"

	"github.com/mikeodnis/core-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the store rejects an email that is already taken.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the persistence operations for users.
// Each write is a single statement.
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, email, name string) (*entity.User, error)
	Update(ctx context.Context, id string, changes entity.UserChanges) (*entity.User, error)
	// Delete removes the row if present and reports how many rows matched.
	Delete(ctx context.Context, id string) (int64, error)
}
