package main

import (
	"log"
	"net/http"

	_ "campusbarter/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"campusbarter/internal/auth"
	"campusbarter/internal/cache"
	"campusbarter/internal/config"
	"campusbarter/internal/db"
	"campusbarter/internal/handler"
	"campusbarter/internal/model"
	"campusbarter/internal/repository"
	"campusbarter/internal/router"
	"campusbarter/internal/service"
)

// @title Campus Barter API
// @version 1.0
// @description Campus bartering marketplace with listings, direct messages and JWT authentication.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.Message{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService, cacheClient)
	itemService := service.NewItemService(itemRepo, jwtService, cfg.EnforceOwnership)
	messageService := service.NewMessageService(messageRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	itemHandler := handler.NewItemHandler(itemService)
	messageHandler := handler.NewMessageHandler(messageService)

	router.Register(e, cfg, authHandler, itemHandler, messageHandler)

	if cfg.EnforceOwnership {
		log.Println("ownership enforcement enabled for item claim/delete")
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
