// Package services – UserService
//
// Users are stored as submitted: email is not unique and the password is kept
// and returned verbatim.
package services

import (
	"context"
	"time"

	"github.com/tbourn/mission-control/internal/domain"
)

// UserService provides user CRUD.
type UserService struct {
	Repo UserRepo
}

// NewUserService constructs a UserService.
func NewUserService(r UserRepo) *UserService {
	return &UserService{Repo: r}
}

// Create validates in and persists it.
func (s *UserService) Create(ctx context.Context, in domain.User) (*domain.User, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.CreateUser(ctx, &in)
}

// List returns all users in creation order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx)
}

// Get returns user id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.Repo.GetUser(ctx, id)
}

// Update replaces name, email and password of user id. The user is resolved
// before validation.
func (s *UserService) Update(ctx context.Context, id string, in domain.User) (*domain.User, error) {
	if _, err := s.Repo.GetUser(ctx, id); err != nil {
		return nil, err
	}
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.UpdateUser(ctx, id, &in)
}

// Delete removes user id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Repo.DeleteUser(ctx, id)
}

// Stats returns the user count and latest UpdatedAt.
func (s *UserService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.UsersStats(ctx)
}
