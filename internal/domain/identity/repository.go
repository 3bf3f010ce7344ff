package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/salon/backend/internal/domain/shared"
)

// UserFilter describes query options for listing users
type UserFilter struct {
	shared.Filter
	Role   *Role
	Active *bool
}

// Repository defines persistence for users
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context, filter UserFilter) ([]User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
