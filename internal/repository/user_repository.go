package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopapi/internal/model"
)

// UserRepository defines user persistence operations. Missing rows surface as
// gorm.ErrRecordNotFound and unique-constraint violations as
// gorm.ErrDuplicatedKey; callers translate both into domain errors.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	DeleteByID(ctx context.Context, id uint) (*model.User, error)
	DeleteByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create persists the user and its role associations in one transaction.
// Roles are linked by id, never rewritten: they are reference data.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Roles.*").Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Preload("Roles").
		Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Preload("Roles").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Roles").Save(user).Error
}

// DeleteByID removes the user and its join rows, returning the pre-delete
// snapshot. Fetch and delete share one transaction so the snapshot always
// matches what was removed.
func (r *userRepository) DeleteByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Roles").First(&user, id).Error; err != nil {
			return err
		}
		return tx.Select(clause.Associations).Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteByUsername behaves like DeleteByID keyed on the unique username.
func (r *userRepository) DeleteByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
			return err
		}
		return tx.Select(clause.Associations).Delete(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
