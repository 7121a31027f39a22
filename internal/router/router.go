package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"campusbarter/internal/config"
	"campusbarter/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
	messageHandler *handler.MessageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me)

	// Item routes
	api.GET("/items", itemHandler.List)
	api.POST("/items", itemHandler.Create)

	// Mutating item routes. With ownership enforcement on, the group also
	// rejects invalid tokens up front; otherwise the relaxed
	// bearer-shaped-header check in the service is the only gate.
	mutate := api.Group("/items")
	if cfg.EnforceOwnership {
		mutate.Use(echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
		}))
	}
	mutate.PUT("/:id/claim", itemHandler.Claim)
	mutate.DELETE("/all", itemHandler.DeleteAll)
	mutate.DELETE("/:id", itemHandler.Delete)

	// Message routes
	api.GET("/messages", messageHandler.List)
	api.POST("/messages", messageHandler.Send)
	api.GET("/messages/conversations", messageHandler.Conversations)
	api.PUT("/messages/mark-read", messageHandler.MarkRead)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
