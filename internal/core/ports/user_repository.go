package ports

import (
	"context"

	"github.com/usermgmt/user-service/internal/core/domain"
)

// UserRepository defines persistence operations over user records. The store
// is the sole authority for identifier assignment and creation timestamps.
type UserRepository interface {
	// FindAll returns every user ordered by creation time, newest first.
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no record matches,
	// including identifiers the store cannot parse.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	CountExcludingRole(ctx context.Context, role domain.Role) (int64, error)
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	// Update replaces name, email and role of the record with the given id
	// and returns the record as stored afterwards.
	Update(ctx context.Context, id string, u *domain.User) (*domain.User, error)
	// Delete removes the record and returns its last-known contents.
	Delete(ctx context.Context, id string) (*domain.User, error)
	// Connected reports the store's current connectivity state.
	Connected(ctx context.Context) bool
}
