package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/hash"
	"shopapi/internal/repository"
)

// Authenticator resolves Basic credentials into an Identity.
type Authenticator struct {
	users repository.UserRepository
}

// NewAuthenticator builds an Authenticator over the user store.
func NewAuthenticator(users repository.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate verifies the credential pair and returns the caller's identity
// with its role set resolved at call time. An unknown username and a wrong
// password both yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &Identity{
		Username: user.Username,
		Roles:    NewRoleSet(user.RoleNames()...),
	}, nil
}

// RolesOf re-resolves the user's role set from the store. Role changes take
// effect on the next authenticated request, never retroactively.
func (a *Authenticator) RolesOf(ctx context.Context, username string) (RoleSet, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return NewRoleSet(user.RoleNames()...), nil
}
