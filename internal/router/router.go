package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/model"
)

// Register wires routes and middleware. Authentication is a Basic-auth stage
// resolving the identity, role requirements are a second stage per route
// group; both run before any handler body.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authenticator *auth.Authenticator,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Register)
	api.GET("/products", productHandler.List)
	if cfg.ProductCreatePolicy == config.ProductCreatePublic {
		api.POST("/products", productHandler.Create)
	}

	// Authenticated routes
	secured := api.Group("", auth.BasicAuth(authenticator))

	secured.GET("/login", authHandler.Login)

	anyRole := auth.RequireRoles(model.RoleUser, model.RoleAdmin)
	secured.GET("/users/:username", userHandler.GetByUsername, anyRole)
	secured.PUT("/users/:username", userHandler.UpdateByUsername, anyRole)
	secured.DELETE("/users/:username", userHandler.DeleteByUsername, anyRole)

	adminOnly := auth.RequireRoles(model.RoleAdmin)
	secured.GET("/products/:id", productHandler.GetByID, anyRole)
	secured.PUT("/products/:id", productHandler.UpdateByID, adminOnly)
	secured.DELETE("/products/:id", productHandler.DeleteByID, adminOnly)
	if cfg.ProductCreatePolicy == config.ProductCreateAdmin {
		secured.POST("/products", productHandler.Create, adminOnly)
	}

	// Admin views keyed by surrogate id
	admin := secured.Group("/admin", adminOnly)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.GetByID)
	admin.PUT("/users/:id", userHandler.UpdateByID)
	admin.DELETE("/users/:id", userHandler.DeleteByID)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
