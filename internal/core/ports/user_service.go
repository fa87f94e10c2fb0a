package ports

import (
	"context"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// CreateUserInput carries the fields accepted when creating a user.
// An empty Role means the configured default role applies.
type CreateUserInput struct {
	Name  string
	Email string
	Role  string
}

// UpdateUserInput carries the full replacement field set for an update.
// Fields the caller omits arrive empty and are written as provided; this is
// whole-object replacement, not a partial patch.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// UserStats holds three aggregate counts, each computed independently at call
// time with no atomicity across them.
type UserStats struct {
	TotalUsers  int64
	AdminCount  int64
	ActiveUsers int64
}

// UserService defines the use-case operations of the service.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) (*domain.User, error)
	Stats(ctx context.Context) (*UserStats, error)
}
