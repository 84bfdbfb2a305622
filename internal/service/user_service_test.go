package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/hash"
	"shopapi/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Role), args.Error(1)
}

func (m *MockRoleRepository) EnsureExists(ctx context.Context, names ...string) error {
	args := m.Called(ctx, names)
	return args.Error(0)
}

func userIdentity(username string, roles ...string) *auth.Identity {
	return &auth.Identity{Username: username, Roles: auth.NewRoleSet(roles...)}
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository, *MockRoleRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Username: "alice", Firstname: "Alice", Lastname: "Doe", Email: "alice@x.com", Password: "password123"},
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				roles.On("FindByName", mock.Anything, model.RoleUser).Return(&model.Role{ID: 1, Name: model.RoleUser}, nil)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "invalid email",
			input:         RegisterInput{Username: "alice", Firstname: "Alice", Lastname: "Doe", Email: "not-an-email", Password: "password123"},
			setupMock:     func(users *MockUserRepository, roles *MockRoleRepository) {},
			expectedError: apperrors.ErrInvalidEmail,
		},
		{
			name:          "weak password",
			input:         RegisterInput{Username: "alice", Firstname: "Alice", Lastname: "Doe", Email: "alice@x.com", Password: "short"},
			setupMock:     func(users *MockUserRepository, roles *MockRoleRepository) {},
			expectedError: apperrors.ErrWeakPassword,
		},
		{
			name:  "username already taken",
			input: RegisterInput{Username: "alice", Firstname: "Alice", Lastname: "Doe", Email: "alice@x.com", Password: "password123"},
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:  "lost insert race surfaces conflict",
			input: RegisterInput{Username: "alice", Firstname: "Alice", Lastname: "Doe", Email: "alice@x.com", Password: "password123"},
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				roles.On("FindByName", mock.Anything, model.RoleUser).Return(&model.Role{ID: 1, Name: model.RoleUser}, nil)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name:  "missing seed role",
			input: RegisterInput{Username: "alice", Firstname: "Alice", Lastname: "Doe", Email: "alice@x.com", Password: "password123"},
			setupMock: func(users *MockUserRepository, roles *MockRoleRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				roles.On("FindByName", mock.Anything, model.RoleUser).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrRoleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			roles := new(MockRoleRepository)
			tt.setupMock(users, roles)

			svc := NewUserService(users, roles)
			user, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.input.Username, user.Username)
				assert.Equal(t, []string{model.RoleUser}, user.RoleNames())
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				assert.True(t, hash.CheckPassword(user.PasswordHash, tt.input.Password))
			}

			users.AssertExpectations(t)
			roles.AssertExpectations(t)
		})
	}
}

func TestUserService_GetByUsername(t *testing.T) {
	users := new(MockUserRepository)
	roles := new(MockRoleRepository)
	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
	users.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(users, roles)
	ctx := context.Background()

	user, err := svc.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_UpdateByUsername(t *testing.T) {
	newFirstname := "Alicia"
	takenUsername := "bob"

	tests := []struct {
		name          string
		identity      *auth.Identity
		target        string
		input         UpdateUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "self update",
			identity: userIdentity("alice", model.RoleUser),
			target:   "alice",
			input:    UpdateUserInput{Firstname: &newFirstname},
			setupMock: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
				users.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "admin updates another user",
			identity: userIdentity("root", model.RoleUser, model.RoleAdmin),
			target:   "alice",
			input:    UpdateUserInput{Firstname: &newFirstname},
			setupMock: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
				users.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "non-admin updating another user is forbidden",
			identity:      userIdentity("bob", model.RoleUser),
			target:        "alice",
			input:         UpdateUserInput{Firstname: &newFirstname},
			setupMock:     func(users *MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "unauthenticated",
			identity:      nil,
			target:        "alice",
			input:         UpdateUserInput{Firstname: &newFirstname},
			setupMock:     func(users *MockUserRepository) {},
			expectedError: apperrors.ErrUnauthenticated,
		},
		{
			name:     "new username collides",
			identity: userIdentity("alice", model.RoleUser),
			target:   "alice",
			input:    UpdateUserInput{Username: &takenUsername},
			setupMock: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)
				users.On("FindByUsername", mock.Anything, "bob").Return(&model.User{ID: 2, Username: "bob"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			svc := NewUserService(users, new(MockRoleRepository))
			user, err := svc.UpdateByUsername(context.Background(), tt.identity, tt.target, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, newFirstname, user.Firstname)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: "old"}, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(users, new(MockRoleRepository))

	newPassword := "fresh-password"
	user, err := svc.UpdateByUsername(context.Background(), userIdentity("alice", model.RoleUser), "alice",
		UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	assert.NotEqual(t, "old", user.PasswordHash)
	assert.True(t, hash.CheckPassword(user.PasswordHash, newPassword))

	weak := "short"
	_, err = svc.UpdateByUsername(context.Background(), userIdentity("alice", model.RoleUser), "alice",
		UpdateUserInput{Password: &weak})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)
}

func TestUserService_DeleteByUsername(t *testing.T) {
	tests := []struct {
		name          string
		identity      *auth.Identity
		target        string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "self delete returns snapshot",
			identity: userIdentity("alice", model.RoleUser),
			target:   "alice",
			setupMock: func(users *MockUserRepository) {
				users.On("DeleteByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
		},
		{
			name:     "second delete is not found",
			identity: userIdentity("root", model.RoleUser, model.RoleAdmin),
			target:   "alice",
			setupMock: func(users *MockUserRepository) {
				users.On("DeleteByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:          "non-admin deleting another user is forbidden",
			identity:      userIdentity("bob", model.RoleUser),
			target:        "alice",
			setupMock:     func(users *MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "numeric username rejected",
			identity:      userIdentity("root", model.RoleUser, model.RoleAdmin),
			target:        "12345",
			setupMock:     func(users *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			svc := NewUserService(users, new(MockRoleRepository))
			user, err := svc.DeleteByUsername(context.Background(), tt.identity, tt.target)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.target, user.Username)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestUserService_ByID(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "alice"}, nil)
	users.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)
	users.On("DeleteByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(users, new(MockRoleRepository))
	ctx := context.Background()

	user, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetByID(ctx, 9)
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFound)

	_, err = svc.DeleteByID(ctx, 9)
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFound)
}
