package repository

import (
	"context"

	"gorm.io/gorm"

	"shopapi/internal/model"
)

// RoleRepository defines role persistence operations. Roles are immutable
// reference data looked up by name.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	EnsureExists(ctx context.Context, names ...string) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository builds a GORM-backed repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// EnsureExists creates any of the given roles that are not present yet.
func (r *roleRepository) EnsureExists(ctx context.Context, names ...string) error {
	for _, name := range names {
		role := model.Role{Name: name}
		if err := r.db.WithContext(ctx).
			Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
