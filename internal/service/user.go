package service

import (
	"context"

	"github.com/seedstage/careers-api/internal/core"
	"github.com/seedstage/careers-api/internal/domain/model"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users core.UserRepository
}

// UserService orchestrates user profile CRUD.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users}
}

// Create creates a user.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	return s.users.Create(ctx, req)
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// List returns all users ordered by username.
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, username string, data map[string]any) (*model.User, error) {
	return s.users.Update(ctx, username, data)
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}
