package main

import (
	"context"
	"net/http"
	"os"

	_ "shopapi/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/handler"
	"shopapi/internal/logger"
	"shopapi/internal/model"
	"shopapi/internal/repository"
	"shopapi/internal/router"
	"shopapi/internal/service"
)

// @title Shop API
// @version 1.0
// @description Role-gated CRUD API over users and products with HTTP Basic authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.basic BasicAuth
func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		logger.Log.Fatalw("logger init", "err", err)
	}

	e := echo.New()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Log.Fatalw("database init", "err", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		logger.Log.Infow("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{"users_roles", &model.User{}, &model.Role{}, &model.Product{}}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				logger.Log.Warnw("drop table failed (may not exist)", "err", err)
			}
		}
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Product{},
	); err != nil {
		logger.Log.Fatalw("auto-migrate", "err", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	roleRepo := repository.NewRoleRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Reference roles must exist before the first registration
	if err := roleRepo.EnsureExists(context.Background(), model.RoleUser, model.RoleAdmin); err != nil {
		logger.Log.Fatalw("seed roles", "err", err)
	}

	// Initialize auth components
	authenticator := auth.NewAuthenticator(userRepo)

	// Initialize services
	userService := service.NewUserService(userRepo, roleRepo)
	productService := service.NewProductService(productRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler()
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	// Register routes
	router.Register(e, cfg, authenticator, authHandler, userHandler, productHandler)

	logger.Log.Infow("starting server",
		"port", cfg.ServerPort,
		"product_create_policy", cfg.ProductCreatePolicy,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Log.Fatalw("server start", "err", err)
	}
}
