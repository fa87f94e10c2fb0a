package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/usermgmt/user-service/internal/core/domain"
	"github.com/usermgmt/user-service/internal/core/ports"
)

// UserService implements the use-case layer over a UserRepository.
type UserService struct {
	repo        ports.UserRepository
	maxUsers    int
	defaultRole domain.Role
	logger      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, maxUsers int, defaultRole domain.Role, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:        repo,
		maxUsers:    maxUsers,
		defaultRole: defaultRole,
		logger:      logger,
	}
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user by identifier.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUser accepts a new user after two checks run in order: the total
// record count must be below the configured maximum, and the email must not
// already exist. Both are separate reads followed by a separate write, so two
// concurrent creates can pass them together; the unique index on email is the
// reliable enforcement point for uniqueness.
func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxUsers) {
		return nil, &domain.LimitReachedError{Max: s.maxUsers}
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	role := domain.Role(in.Role)
	if in.Role == "" {
		role = s.defaultRole
	}

	user := &domain.User{Name: in.Name, Email: in.Email, Role: role}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to create user")
		return nil, err
	}

	s.logger.Info().Str("id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// UpdateUser replaces name, email and role of an existing user. The whole
// mutable field set is written as provided, so the same schema rules as
// create apply to the replacement values.
func (s *UserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user := &domain.User{Name: in.Name, Email: in.Email, Role: domain.Role(in.Role)}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", updated.ID).Msg("user updated")
	return updated, nil
}

// DeleteUser permanently removes a user and returns its last-known contents.
func (s *UserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", deleted.ID).Str("email", deleted.Email).Msg("user deleted")
	return deleted, nil
}

// Stats computes the three aggregate counts. Each count is an independent
// query; no atomicity holds across them.
func (s *UserService) Stats(ctx context.Context) (*ports.UserStats, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.repo.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountExcludingRole(ctx, domain.RoleGuest)
	if err != nil {
		return nil, err
	}

	return &ports.UserStats{
		TotalUsers:  total,
		AdminCount:  admins,
		ActiveUsers: active,
	}, nil
}
