package container

import (
	"fluto-auth/internal/config"
	"fluto-auth/internal/repository"
	"fluto-auth/internal/service"
	"fluto-auth/internal/service/auth"
	"fluto-auth/pkg/database"
	"fluto-auth/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *database.PostgresDB
	Users    repository.UserRepository
	Services *service.Services
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *logger.Logger, db *database.PostgresDB) (*Container, error) {
	users := repository.NewUserRepository(db)

	verifier := auth.NewGoogleVerifier(cfg.GoogleClientID, logger)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, cfg.RefreshThreshold)
	authService := auth.NewService(verifier, tokens, users, logger)

	services := &service.Services{
		Auth:   authService,
		Google: verifier,
		Token:  tokens,
	}

	return &Container{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Users:    users,
		Services: services,
	}, nil
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}
