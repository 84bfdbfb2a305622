package main

import (
	"context"
	"errors"
	"flag"

	"gorm.io/gorm"

	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/hash"
	"shopapi/internal/logger"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// Seeds the reference roles and a bootstrap admin account. Safe to run
// repeatedly: existing rows are updated, not duplicated.
func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "admin@shop.local", "admin email")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		logger.Log.Fatalw("logger init", "err", err)
	}

	if *password == "" {
		logger.Log.Fatalw("missing -password flag")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Log.Fatalw("database init", "err", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Role{}, &model.Product{}); err != nil {
		logger.Log.Fatalw("auto-migrate", "err", err)
	}

	ctx := context.Background()
	roleRepo := repository.NewRoleRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)

	if err := roleRepo.EnsureExists(ctx, model.RoleUser, model.RoleAdmin); err != nil {
		logger.Log.Fatalw("seed roles", "err", err)
	}
	logger.Log.Infow("reference roles seeded", "roles", []string{model.RoleUser, model.RoleAdmin})

	created, err := seedAdmin(ctx, userRepo, roleRepo, *username, *email, *password)
	if err != nil {
		logger.Log.Fatalw("seed admin", "err", err)
	}
	if created {
		logger.Log.Infow("admin account created", "username", *username)
	} else {
		logger.Log.Infow("admin account already present, password updated", "username", *username)
	}
}

func seedAdmin(ctx context.Context, users repository.UserRepository, roles repository.RoleRepository, username, email, password string) (bool, error) {
	digest, err := hash.HashPassword(password)
	if err != nil {
		return false, err
	}

	existing, err := users.FindByUsername(ctx, username)
	if err == nil {
		existing.PasswordHash = digest
		return false, users.Update(ctx, existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	userRole, err := roles.FindByName(ctx, model.RoleUser)
	if err != nil {
		return false, err
	}
	adminRole, err := roles.FindByName(ctx, model.RoleAdmin)
	if err != nil {
		return false, err
	}

	admin := &model.User{
		Username:     username,
		Firstname:    "Shop",
		Lastname:     "Admin",
		Email:        email,
		PasswordHash: digest,
		Roles:        []model.Role{*userRole, *adminRole},
	}
	return true, users.Create(ctx, admin)
}
