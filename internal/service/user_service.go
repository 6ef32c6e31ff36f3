package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile reads and back-office user management.
//
// Deleting a user removes only the user row; accounts, cards and journal
// entries are retained for the audit trail and must be removed through their
// own guarded paths. Cascading is a product decision that has not been made.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetUserWithAccounts(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	PromoteUser(ctx context.Context, id uint) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// GetUserWithAccounts retrieves a user and their accounts, for the back office.
func (s *userService) GetUserWithAccounts(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByIDWithAccounts(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// PromoteUser grants the admin role.
func (s *userService) PromoteUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
		return nil, err
	}
	user.Role = model.RoleAdmin

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// DeleteUser removes the user row.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
