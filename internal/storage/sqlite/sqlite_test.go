package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage/sqlite"
)

func newTestRepository(t *testing.T) *sqlite.Repository {
	t.Helper()

	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: filepath.Join(t.TempDir(), "docsign.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return repo
}

func TestRepositoryCRUD(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := newTestRepository(t)

	doc := model.Document{
		ID:        "01JGXYZABCDEF1234567890ABC",
		Name:      "contract.pdf",
		Status:    model.DocumentStatusPending,
		Signers:   []string{},
		CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	// Create and read back.
	require.NoError(repo.CreateDocument(ctx, doc))
	retrieved, err := repo.GetDocument(ctx, doc.ID)
	require.NoError(err)
	assert.Equal(t, doc, *retrieved)

	// Duplicate IDs are rejected.
	err = repo.CreateDocument(ctx, doc)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	// Status update.
	updated, err := repo.SetDocumentStatus(ctx, doc.ID, model.DocumentStatusSent)
	require.NoError(err)
	assert.Equal(t, model.DocumentStatusSent, updated.Status)

	// Signers append twice, concatenation preserved.
	_, err = repo.AppendDocumentSigners(ctx, doc.ID, []string{"a@b.com"})
	require.NoError(err)
	updated, err = repo.AppendDocumentSigners(ctx, doc.ID, []string{"c@d.com"})
	require.NoError(err)
	assert.Equal(t, []string{"a@b.com", "c@d.com"}, updated.Signers)

	// Delete, then delete again is not found.
	require.NoError(repo.DeleteDocument(ctx, doc.ID))
	err = repo.DeleteDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	docs, err := repo.ListDocuments(ctx)
	require.NoError(err)
	assert.Empty(t, docs)
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.SetDocumentStatus(ctx, "missing", model.DocumentStatusSent)
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.AppendDocumentSigners(ctx, "missing", []string{"a@b.com"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestRepositoryListOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := newTestRepository(t)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"doc-c", "doc-a", "doc-b"} {
		require.NoError(repo.CreateDocument(ctx, model.Document{
			ID:        id,
			Name:      id + ".pdf",
			Status:    model.DocumentStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	docs, err := repo.ListDocuments(ctx)
	require.NoError(err)
	require.Len(docs, 3)
	assert.Equal(t, "doc-c", docs[0].ID)
	assert.Equal(t, "doc-a", docs[1].ID)
	assert.Equal(t, "doc-b", docs[2].ID)
}

func TestRepositoryStatusLifecycle(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(repo.CreateDocument(ctx, model.Document{
		ID:        "doc-1",
		Name:      "contract.pdf",
		Status:    model.DocumentStatusPending,
		CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}))

	// Signing before any signature request was sent is not allowed.
	_, err := repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSigned)
	assert.ErrorIs(t, err, model.ErrNotValid)

	retrieved, err := repo.GetDocument(ctx, "doc-1")
	require.NoError(err)
	assert.Equal(t, model.DocumentStatusPending, retrieved.Status)

	_, err = repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSent)
	require.NoError(err)
	updated, err := repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSigned)
	require.NoError(err)
	assert.Equal(t, model.DocumentStatusSigned, updated.Status)

	// Rewriting the current status is a no-op.
	updated, err = repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSigned)
	require.NoError(err)
	assert.Equal(t, model.DocumentStatusSigned, updated.Status)
}

func TestRepositoryPersistsAcrossReopen(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "docsign.db")

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath})
	require.NoError(err)
	require.NoError(repo.CreateDocument(ctx, model.Document{
		ID:        "doc-1",
		Name:      "contract.pdf",
		Status:    model.DocumentStatusPending,
		CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(repo.Close())

	reopened, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{DBPath: dbPath})
	require.NoError(err)
	defer reopened.Close()

	retrieved, err := reopened.GetDocument(ctx, "doc-1")
	require.NoError(err)
	assert.Equal(t, "contract.pdf", retrieved.Name)
}
