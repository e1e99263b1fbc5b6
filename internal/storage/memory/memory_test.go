package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage"
	"github.com/docsign/docsign/internal/storage/memory"
)

func testDocument(id, name string) model.Document {
	return model.Document{
		ID:        id,
		Name:      name,
		Status:    model.DocumentStatusPending,
		Signers:   []string{},
		CreatedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestRepositoryCRUD(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *memory.Repository) error
		expErr  bool
	}{
		"Creating a document should work": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				retrieved, err := repo.GetDocument(ctx, "doc-1")
				require.NoError(t, err)
				assert.Equal(t, "doc-1", retrieved.ID)
				assert.Equal(t, "contract.pdf", retrieved.Name)
				assert.Equal(t, model.DocumentStatusPending, retrieved.Status)
				assert.Empty(t, retrieved.Signers)

				return nil
			},
		},

		"Creating a duplicate ID should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				err = repo.CreateDocument(ctx, testDocument("doc-1", "other.pdf"))
				assert.ErrorIs(t, err, model.ErrAlreadyExists)
				return err
			},
			expErr: true,
		},

		"Creating an invalid document should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				return repo.CreateDocument(ctx, model.Document{ID: "doc-1"})
			},
			expErr: true,
		},

		"Getting a missing document should fail with not found": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				_, err := repo.GetDocument(ctx, "missing")
				assert.ErrorIs(t, err, model.ErrNotFound)
				return err
			},
			expErr: true,
		},

		"Setting the status should rewrite only the status": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				updated, err := repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSent)
				require.NoError(t, err)
				assert.Equal(t, model.DocumentStatusSent, updated.Status)
				assert.Equal(t, "contract.pdf", updated.Name)

				return nil
			},
		},

		"Setting the status on a missing document should not mutate anything": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				_, err = repo.SetDocumentStatus(ctx, "missing", model.DocumentStatusSent)
				assert.ErrorIs(t, err, model.ErrNotFound)

				docs, listErr := repo.ListDocuments(ctx)
				require.NoError(t, listErr)
				assert.Len(t, docs, 1)
				assert.Equal(t, model.DocumentStatusPending, docs[0].Status)

				return err
			},
			expErr: true,
		},

		"Setting a status the lifecycle does not allow should fail": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				_, err = repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSigned)
				assert.ErrorIs(t, err, model.ErrNotValid)

				retrieved, getErr := repo.GetDocument(ctx, "doc-1")
				require.NoError(t, getErr)
				assert.Equal(t, model.DocumentStatusPending, retrieved.Status)

				return err
			},
			expErr: true,
		},

		"Setting a terminal status again should be a no-op": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				_, err = repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSent)
				require.NoError(t, err)
				_, err = repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSigned)
				require.NoError(t, err)

				updated, err := repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSigned)
				require.NoError(t, err)
				assert.Equal(t, model.DocumentStatusSigned, updated.Status)

				return nil
			},
		},

		"Appending signers should concatenate, never replace": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				_, err = repo.AppendDocumentSigners(ctx, "doc-1", []string{"a@b.com"})
				require.NoError(t, err)

				updated, err := repo.AppendDocumentSigners(ctx, "doc-1", []string{"c@d.com", "e@f.com"})
				require.NoError(t, err)
				assert.Equal(t, []string{"a@b.com", "c@d.com", "e@f.com"}, updated.Signers)

				return nil
			},
		},

		"Appending signers on a missing document should not mutate anything": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				_, err := repo.AppendDocumentSigners(ctx, "missing", []string{"a@b.com"})
				assert.ErrorIs(t, err, model.ErrNotFound)
				return err
			},
			expErr: true,
		},

		"Deleting a document should remove it": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				err = repo.DeleteDocument(ctx, "doc-1")
				require.NoError(t, err)

				docs, err := repo.ListDocuments(ctx)
				require.NoError(t, err)
				assert.Empty(t, docs)

				return nil
			},
		},

		"Deleting a missing document should fail with not found and leave the collection unchanged": {
			actions: func(ctx context.Context, t *testing.T, repo *memory.Repository) error {
				err := repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf"))
				require.NoError(t, err)

				err = repo.DeleteDocument(ctx, "doc-1")
				require.NoError(t, err)

				err = repo.DeleteDocument(ctx, "doc-1")
				assert.ErrorIs(t, err, model.ErrNotFound)

				docs, listErr := repo.ListDocuments(ctx)
				require.NoError(t, listErr)
				assert.Empty(t, docs)

				return err
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo, err := memory.NewRepository(memory.RepositoryConfig{})
			require.NoError(t, err)

			err = test.actions(context.Background(), t, repo)
			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepositoryListOrder(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)

	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"doc-c", "doc-a", "doc-b"} {
		d := testDocument(id, id+".pdf")
		d.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(repo.CreateDocument(ctx, d))
	}

	docs, err := repo.ListDocuments(ctx)
	require.NoError(err)
	require.Len(docs, 3)
	assert.Equal(t, "doc-c", docs[0].ID)
	assert.Equal(t, "doc-a", docs[1].ID)
	assert.Equal(t, "doc-b", docs[2].ID)
}

func TestRepositorySubscribe(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)

	events, unsubscribe := repo.Subscribe()
	defer unsubscribe()

	require.NoError(repo.CreateDocument(ctx, testDocument("doc-1", "contract.pdf")))
	_, err = repo.SetDocumentStatus(ctx, "doc-1", model.DocumentStatusSent)
	require.NoError(err)
	require.NoError(repo.DeleteDocument(ctx, "doc-1"))

	expTypes := []storage.EventType{
		storage.EventTypeCreated,
		storage.EventTypeUpdated,
		storage.EventTypeDeleted,
	}
	for _, expType := range expTypes {
		select {
		case ev := <-events:
			assert.Equal(t, expType, ev.Type)
			assert.Equal(t, "doc-1", ev.Document.ID)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s event", expType)
		}
	}
}
