package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/hash"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

const minPasswordLen = 8

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

// UpdateUserInput carries optional replacement fields; nil means unchanged.
type UpdateUserInput struct {
	Username  *string
	Firstname *string
	Lastname  *string
	Password  *string
}

// UserService exposes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateByID(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error)
	UpdateByUsername(ctx context.Context, identity *auth.Identity, username string, in UpdateUserInput) (*model.User, error)
	DeleteByID(ctx context.Context, id uint) (*model.User, error)
	DeleteByUsername(ctx context.Context, identity *auth.Identity, username string) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewUserService builds a UserService over the user and role stores.
func NewUserService(users repository.UserRepository, roles repository.RoleRepository) UserService {
	return &userService{users: users, roles: roles}
}

// Register validates the input, hashes the password, attaches the default
// "user" role and persists the account. The username pre-check reports early
// conflicts, but a concurrent insert losing the race still surfaces as a
// conflict through the store's unique constraints.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if !strings.Contains(in.Email, "@") {
		return nil, apperrors.ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLen {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	digest, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role, err := s.roles.FindByName(ctx, model.RoleUser)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find default role: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		PasswordHash: digest,
		Roles:        []model.Role{*role},
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserIDNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *userService) UpdateByID(ctx context.Context, id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserIDNotFound
		}
		return nil, err
	}
	return s.applyUpdate(ctx, user, in)
}

// UpdateByUsername is the self-service variant: the authenticated identity
// must be the target user or hold the admin role. This ownership check layers
// on top of the coarse route gate.
func (s *userService) UpdateByUsername(ctx context.Context, identity *auth.Identity, username string, in UpdateUserInput) (*model.User, error) {
	if err := requireSelfOrAdmin(identity, username); err != nil {
		return nil, err
	}
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return s.applyUpdate(ctx, user, in)
}

func (s *userService) DeleteByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserIDNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteByUsername(ctx context.Context, identity *auth.Identity, username string) (*model.User, error) {
	if err := requireSelfOrAdmin(identity, username); err != nil {
		return nil, err
	}
	if _, err := strconv.Atoi(username); err == nil {
		return nil, apperrors.ErrInvalidUsername
	}
	user, err := s.users.DeleteByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) applyUpdate(ctx context.Context, user *model.User, in UpdateUserInput) (*model.User, error) {
	if in.Username != nil && *in.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, *in.Username); err == nil {
			return nil, apperrors.ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check username: %w", err)
		}
		user.Username = *in.Username
	}
	if in.Firstname != nil {
		user.Firstname = *in.Firstname
	}
	if in.Lastname != nil {
		user.Lastname = *in.Lastname
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return nil, apperrors.ErrWeakPassword
		}
		digest, err := hash.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = digest
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func requireSelfOrAdmin(identity *auth.Identity, username string) error {
	if identity == nil {
		return apperrors.ErrUnauthenticated
	}
	if identity.Username == username || identity.Roles.Has(model.RoleAdmin) {
		return nil
	}
	return apperrors.ErrForbidden
}
