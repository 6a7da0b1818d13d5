package postgres

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/paperstack/docshare/config"
	"github.com/paperstack/docshare/repositories"
)

// RepositoryFactory creates repository instances backed by a shared connection pool
type RepositoryFactory struct {
	db     *DB
	logger *zap.Logger
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(cfg *config.Config, logger *zap.Logger) (*RepositoryFactory, error) {
	db, err := NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	return &RepositoryFactory{
		db:     db,
		logger: logger,
	}, nil
}

// GetDB returns the underlying database connection
func (f *RepositoryFactory) GetDB() *DB {
	return f.db
}

// NewRepositories creates all repository instances
func (f *RepositoryFactory) NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Documents: NewDocumentRepository(f.db, f.logger),
		Users:     NewUserRepository(f.db, f.logger),
		Roles:     NewRoleRepository(f.db, f.logger),
	}
}

// Close closes the underlying database connection
func (f *RepositoryFactory) Close() error {
	return f.db.Close()
}
