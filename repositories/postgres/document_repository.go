package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paperstack/docshare/models"
	"github.com/paperstack/docshare/repositories"
	"github.com/paperstack/docshare/services"
)

// DocumentRepository implements the repositories.DocumentRepository interface
type DocumentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB, logger *zap.Logger) repositories.DocumentRepository {
	return &DocumentRepository{
		db:     db,
		logger: logger,
	}
}

const documentColumns = "id, title, content, access, owner_id, created_at, updated_at"

// Create persists a new document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, title, content, access, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.Access,
		doc.OwnerID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	r.logger.Debug("document created",
		zap.String("id", doc.ID.String()),
		zap.String("owner_id", doc.OwnerID.String()))
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`

	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&doc.Content,
		&doc.Access,
		&doc.OwnerID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// List retrieves documents ordered by creation time descending with the total count
func (r *DocumentRepository) List(ctx context.Context, opts repositories.ListOptions) ([]*models.Document, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		ORDER BY created_at DESC
	` + limitOffsetClause(opts)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// ListByAccess retrieves documents with the given access level with the total count
func (r *DocumentRepository) ListByAccess(ctx context.Context, access models.AccessLevel, opts repositories.ListOptions) ([]*models.Document, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE access = $1", access).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE access = $1
		ORDER BY created_at DESC
	` + limitOffsetClause(opts)

	rows, err := r.db.QueryContext(ctx, query, access)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// Search retrieves documents visible to the viewer (public or owned) matching
// the term in the title or content. Matching is a case-sensitive substring
// match, so LIKE rather than ILIKE.
func (r *DocumentRepository) Search(ctx context.Context, viewerID uuid.UUID, term string, opts repositories.ListOptions) ([]*models.Document, int, error) {
	where := "WHERE (access = 'public' OR owner_id = $1)"
	args := []interface{}{viewerID}
	if term != "" {
		where += " AND (title LIKE $2 OR content LIKE $2)"
		args = append(args, "%"+term+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := `
		SELECT ` + documentColumns + `
		FROM documents
		` + where + `
		ORDER BY created_at DESC
	` + limitOffsetClause(opts)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// Update persists changes to an existing document
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := `
		UPDATE documents
		SET title = $2,
		    content = $3,
		    access = $4,
		    updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.Access,
		doc.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return services.ErrDocumentNotFound
	}

	r.logger.Debug("document updated", zap.String("id", doc.ID.String()))
	return nil
}

// Delete removes a document
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return services.ErrDocumentNotFound
	}

	r.logger.Debug("document deleted", zap.String("id", id.String()))
	return nil
}

// scanDocuments reads all rows into documents
func scanDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.Title,
			&doc.Content,
			&doc.Access,
			&doc.OwnerID,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return docs, nil
}

// limitOffsetClause renders the pagination tail of a list query.
// A zero limit disables the LIMIT clause.
func limitOffsetClause(opts repositories.ListOptions) string {
	clause := ""
	if opts.Limit > 0 {
		clause += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}
	return clause
}
