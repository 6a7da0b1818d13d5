package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/paperstack/docshare/auth"
	"github.com/paperstack/docshare/config"
	"github.com/paperstack/docshare/handlers"
	"github.com/paperstack/docshare/middleware"
	"github.com/paperstack/docshare/repositories"
	"github.com/paperstack/docshare/repositories/postgres"
	"github.com/paperstack/docshare/services/document"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Documents repositories.DocumentRepository
	Users     repositories.UserRepository
	Roles     repositories.RoleRepository

	// Services
	DocumentService *document.Service

	// Auth
	TokenValidator *auth.JWTValidator
	AuthMiddleware *middleware.AuthMiddleware

	// Handlers
	DocumentHandler *handlers.DocumentHandler
	AdminHandler    *handlers.AdminHandler
	HealthHandler   *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initRepositories()
	deps.initAuth(cfg)
	deps.initServices()
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection and repository factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() {
	repos := d.RepoFactory.NewRepositories()

	d.Documents = repos.Documents
	d.Users = repos.Users
	d.Roles = repos.Roles

	d.Logger.Info("repositories initialized")
}

// initAuth initializes the token validator and auth middleware
func (d *Dependencies) initAuth(cfg *config.Config) {
	d.TokenValidator = auth.NewJWTValidator(cfg.Auth)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.TokenValidator, d.Roles, d.Logger)
	d.Logger.Info("auth middleware initialized")
}

// initServices initializes the service layer
func (d *Dependencies) initServices() {
	d.DocumentService = document.NewService(d.Documents, d.Users, d.Logger)
}

// initHandlers initializes the HTTP handlers
func (d *Dependencies) initHandlers() {
	d.DocumentHandler = handlers.NewDocumentHandler(d.DocumentService, d.Logger)
	d.AdminHandler = handlers.NewAdminHandler(d.Users, d.Roles, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.DB, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
