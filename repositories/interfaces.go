package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/paperstack/docshare/models"
)

// ListOptions carries pagination inputs for list-style queries.
// A Limit of zero disables the LIMIT clause.
type ListOptions struct {
	Limit  int
	Offset int
}

// DocumentRepository handles document data operations
type DocumentRepository interface {
	// Create persists a new document
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)

	// List retrieves documents ordered by creation time descending,
	// returning the page of rows and the total matching count
	List(ctx context.Context, opts ListOptions) ([]*models.Document, int, error)

	// ListByAccess retrieves documents with the given access level,
	// ordered by creation time descending, with the total matching count
	ListByAccess(ctx context.Context, access models.AccessLevel, opts ListOptions) ([]*models.Document, int, error)

	// Search retrieves documents that are public or owned by viewerID and,
	// when term is non-empty, contain it in the title or content
	// (case-sensitive substring match)
	Search(ctx context.Context, viewerID uuid.UUID, term string, opts ListOptions) ([]*models.Document, int, error)

	// Update persists changes to an existing document
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository handles user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// List retrieves all users ordered by creation time descending
	List(ctx context.Context) ([]*models.User, error)
}

// RoleRepository handles role data operations
type RoleRepository interface {
	// GetByID retrieves a role by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)

	// List retrieves all roles
	List(ctx context.Context) ([]*models.Role, error)
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Documents DocumentRepository
	Users     UserRepository
	Roles     RoleRepository
}
