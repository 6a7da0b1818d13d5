package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/paperstack/docshare/models"
	"github.com/paperstack/docshare/repositories"
	"github.com/paperstack/docshare/services"
)

func newMockRepo(t *testing.T) (repositories.DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	db := &DB{DB: mockDB, logger: zap.NewNop()}
	return NewDocumentRepository(db, zap.NewNop()), mock
}

func documentRows(docs ...*models.Document) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "content", "access", "owner_id", "created_at", "updated_at"})
	for _, d := range docs {
		rows.AddRow(d.ID.String(), d.Title, d.Content, string(d.Access), d.OwnerID.String(), d.CreatedAt, d.UpdatedAt)
	}
	return rows
}

func sampleDocument() *models.Document {
	now := time.Now()
	return &models.Document{
		ID:        uuid.New(),
		Title:     "handbook",
		Content:   "policies",
		Access:    models.AccessPublic,
		OwnerID:   uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestDocumentRepositoryCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := sampleDocument()

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.Content, doc.Access, doc.OwnerID, doc.CreatedAt, doc.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), doc)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryGetByID(t *testing.T) {
	t.Run("returns the document when it exists", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		doc := sampleDocument()

		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs(doc.ID).
			WillReturnRows(documentRows(doc))

		got, err := repo.GetByID(context.Background(), doc.ID)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, got.ID)
		assert.Equal(t, doc.Title, got.Title)
		assert.Equal(t, models.AccessPublic, got.Access)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps no rows to the not-found sentinel", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs(id).
			WillReturnRows(documentRows())

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, services.ErrDocumentNotFound)
	})
}

func TestDocumentRepositoryList(t *testing.T) {
	t.Run("counts then pages with limit and offset", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		doc := sampleDocument()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))
		mock.ExpectQuery("SELECT (.+) FROM documents(.+)ORDER BY created_at DESC(.+)LIMIT 10 OFFSET 20").
			WillReturnRows(documentRows(doc))

		docs, total, err := repo.List(context.Background(), repositories.ListOptions{Limit: 10, Offset: 20})
		require.NoError(t, err)
		assert.Equal(t, 23, total)
		assert.Len(t, docs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero limit omits the LIMIT clause", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM documents(.+)ORDER BY created_at DESC\s*$`).
			WillReturnRows(documentRows())

		docs, total, err := repo.List(context.Background(), repositories.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepositoryListByAccess(t *testing.T) {
	repo, mock := newMockRepo(t)
	doc := sampleDocument()
	doc.Access = models.AccessRole

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE access = \$1`).
		WithArgs(models.AccessRole).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM documents(.+)WHERE access = \$1`).
		WithArgs(models.AccessRole).
		WillReturnRows(documentRows(doc))

	docs, total, err := repo.ListByAccess(context.Background(), models.AccessRole, repositories.ListOptions{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, docs, 1)
	assert.Equal(t, models.AccessRole, docs[0].Access)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositorySearch(t *testing.T) {
	t.Run("scopes to public-or-owned and wraps the term for LIKE", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		viewerID := uuid.New()
		doc := sampleDocument()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE \(access = 'public' OR owner_id = \$1\) AND \(title LIKE \$2 OR content LIKE \$2\)`).
			WithArgs(viewerID, "%handbook%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT (.+) FROM documents(.+)WHERE \(access = 'public' OR owner_id = \$1\) AND \(title LIKE \$2 OR content LIKE \$2\)`).
			WithArgs(viewerID, "%handbook%").
			WillReturnRows(documentRows(doc))

		docs, total, err := repo.Search(context.Background(), viewerID, "handbook", repositories.ListOptions{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, docs, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty term drops the LIKE filter", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		viewerID := uuid.New()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE \(access = 'public' OR owner_id = \$1\)\s*$`).
			WithArgs(viewerID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM documents(.+)WHERE \(access = 'public' OR owner_id = \$1\)`).
			WithArgs(viewerID).
			WillReturnRows(documentRows())

		docs, total, err := repo.Search(context.Background(), viewerID, "", repositories.ListOptions{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, docs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentRepositoryUpdate(t *testing.T) {
	t.Run("updates an existing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		doc := sampleDocument()

		mock.ExpectExec("UPDATE documents").
			WithArgs(doc.ID, doc.Title, doc.Content, doc.Access, doc.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(context.Background(), doc)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps zero affected rows to not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		doc := sampleDocument()

		mock.ExpectExec("UPDATE documents").
			WithArgs(doc.ID, doc.Title, doc.Content, doc.Access, doc.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), doc)
		assert.ErrorIs(t, err, services.ErrDocumentNotFound)
	})
}

func TestDocumentRepositoryDelete(t *testing.T) {
	t.Run("deletes an existing row", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM documents WHERE id").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), id)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps zero affected rows to not found", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM documents WHERE id").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), id)
		assert.ErrorIs(t, err, services.ErrDocumentNotFound)
	})
}
