package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperstack/docshare/models"
	"github.com/paperstack/docshare/repositories"
	"github.com/paperstack/docshare/services"
)

// Viewer identifies the authenticated caller for authorization decisions
type Viewer struct {
	UserID uuid.UUID
	RoleID uuid.UUID
}

// Pagination carries the limit/offset inputs of list operations
type Pagination struct {
	Limit  int
	Offset int
}

// DefaultPagination returns the default page window (limit 10, offset 0)
func DefaultPagination() Pagination {
	return Pagination{Limit: 10, Offset: 0}
}

// PageMetadata describes the position of a page within the full result set
type PageMetadata struct {
	TotalCount  int `json:"total_count"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
}

// Page is the result of a list-style operation
type Page struct {
	Documents []*models.Document
	Metadata  *PageMetadata
}

// NewPageMetadata computes pagination metadata. Returns nil when limit is
// zero, in which case the result set is unbounded and has no page position.
func NewPageMetadata(total, limit, offset, pageSize int) *PageMetadata {
	if limit <= 0 {
		return nil
	}
	return &PageMetadata{
		TotalCount:  total,
		Pages:       (total + limit - 1) / limit,
		CurrentPage: offset/limit + 1,
		PageSize:    pageSize,
	}
}

// CreateInput is the accepted input for creating a document. The owner is
// never part of the input; it is always the authenticated caller.
type CreateInput struct {
	Title   string
	Content string
	Access  models.AccessLevel
}

// UpdateInput is the accepted partial update for a document. Nil fields are
// left unchanged.
type UpdateInput struct {
	Title   *string
	Content *string
	Access  *models.AccessLevel
}

// Service implements the document operations and their access-control rules
type Service struct {
	docs   repositories.DocumentRepository
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewService creates a new document service
func NewService(docs repositories.DocumentRepository, users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		docs:   docs,
		users:  users,
		logger: logger,
	}
}

// Create persists a new document owned by the viewer. Any owner supplied by
// the client is ignored; ownership always comes from the authenticated
// identity.
func (s *Service) Create(ctx context.Context, viewer Viewer, input CreateInput) (*models.Document, error) {
	if input.Access != "" && !input.Access.Valid() {
		return nil, services.ErrInvalidAccessLevel.WithDetail("access", string(input.Access))
	}

	doc := models.NewDocument(input.Title, input.Content, input.Access, viewer.UserID)
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		zap.String("document_id", doc.ID.String()),
		zap.String("owner_id", viewer.UserID.String()))
	return doc, nil
}

// List returns documents ordered by creation time descending with
// pagination metadata.
func (s *Service) List(ctx context.Context, p Pagination) (*Page, error) {
	if err := validatePagination(p); err != nil {
		return nil, err
	}

	docs, total, err := s.docs.List(ctx, repositories.ListOptions{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}

	return &Page{
		Documents: docs,
		Metadata:  NewPageMetadata(total, p.Limit, p.Offset, len(docs)),
	}, nil
}

// Get returns a document if the viewer is allowed to see it. The policy is
// evaluated in order: missing document, public access, private-and-owner,
// role-scoped access, otherwise denied.
//
// The role-scoped branch performs a second, independent read of the owner's
// user record; a role change between the two reads is an accepted
// eventual-consistency window.
func (s *Service) Get(ctx context.Context, viewer Viewer, id uuid.UUID) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch doc.Access {
	case models.AccessPublic:
		return doc, nil

	case models.AccessPrivate:
		if doc.IsOwnedBy(viewer.UserID) {
			return doc, nil
		}

	case models.AccessRole:
		owner, err := s.users.GetByID(ctx, doc.OwnerID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				// Orphaned document: owner record is gone, deny.
				break
			}
			return nil, err
		}
		if owner.RoleID == viewer.RoleID {
			return doc, nil
		}
	}

	s.logger.Debug("document view denied",
		zap.String("document_id", id.String()),
		zap.String("viewer_id", viewer.UserID.String()),
		zap.String("access", string(doc.Access)))
	return nil, services.ErrDocumentViewDenied
}

// ListByAccess returns documents with the given access level. No ownership
// or visibility filtering is applied beyond the access-level equality filter;
// this mirrors the established API contract for the endpoint.
func (s *Service) ListByAccess(ctx context.Context, access models.AccessLevel, p Pagination) (*Page, error) {
	if !access.Valid() {
		return nil, services.ErrInvalidAccessLevel.WithDetail("access", string(access))
	}
	if err := validatePagination(p); err != nil {
		return nil, err
	}

	docs, total, err := s.docs.ListByAccess(ctx, access, repositories.ListOptions{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}

	return &Page{
		Documents: docs,
		Metadata:  NewPageMetadata(total, p.Limit, p.Offset, len(docs)),
	}, nil
}

// Search returns documents that are public or owned by the viewer and, when
// term is non-empty, contain it in the title or content.
func (s *Service) Search(ctx context.Context, viewer Viewer, term string, p Pagination) (*Page, error) {
	if err := validatePagination(p); err != nil {
		return nil, err
	}

	docs, total, err := s.docs.Search(ctx, viewer.UserID, term, repositories.ListOptions{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}

	return &Page{
		Documents: docs,
		Metadata:  NewPageMetadata(total, p.Limit, p.Offset, len(docs)),
	}, nil
}

// Update merges the given fields into an existing document. Only the owner
// may update a document.
func (s *Service) Update(ctx context.Context, viewer Viewer, id uuid.UUID, input UpdateInput) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !doc.IsOwnedBy(viewer.UserID) {
		return nil, services.ErrNotDocumentOwner
	}

	if input.Title != nil {
		doc.Title = *input.Title
	}
	if input.Content != nil {
		doc.Content = *input.Content
	}
	if input.Access != nil {
		if !input.Access.Valid() {
			return nil, services.ErrInvalidAccessLevel.WithDetail("access", string(*input.Access))
		}
		doc.Access = *input.Access
	}
	doc.UpdatedAt = time.Now()

	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document updated", zap.String("document_id", id.String()))
	return doc, nil
}

// Delete removes a document. Only the owner may delete a document.
func (s *Service) Delete(ctx context.Context, viewer Viewer, id uuid.UUID) error {
	doc, err := s.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !doc.IsOwnedBy(viewer.UserID) {
		return services.ErrNotDocumentOwner
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", zap.String("document_id", id.String()))
	return nil
}

// validatePagination rejects negative windows. A zero limit is allowed and
// disables paging (no metadata).
func validatePagination(p Pagination) error {
	if p.Limit < 0 {
		return services.ErrInvalidPagination.WithDetail("limit", p.Limit)
	}
	if p.Offset < 0 {
		return services.ErrInvalidPagination.WithDetail("offset", p.Offset)
	}
	return nil
}
