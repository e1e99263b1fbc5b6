package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository. It honors the
// same per-call atomicity contract as the memory repository, each operation is
// a single statement or transaction.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// CreateDocument creates a new document in the repository.
func (r *Repository) CreateDocument(ctx context.Context, d model.Document) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	signers, err := marshalSigners(d.Signers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO documents (id, name, status, signers, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query, d.ID, d.Name, d.Status, signers, d.CreatedAt.Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: documents.") {
			return fmt.Errorf("document already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert document: %w", err)
	}

	r.logger.Debugf("Created document in repository: %s", d.ID)
	return nil
}

// GetDocument retrieves a document by ID.
func (r *Repository) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	query := `
		SELECT id, name, status, signers, created_at
		FROM documents
		WHERE id = ?
	`

	document, err := r.scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query document: %w", err)
	}

	return document, nil
}

// ListDocuments returns all documents ordered by creation time, then ID.
func (r *Repository) ListDocuments(ctx context.Context) ([]model.Document, error) {
	query := `
		SELECT id, name, status, signers, created_at
		FROM documents
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query documents: %w", err)
	}
	defer rows.Close()

	documents := []model.Document{}
	for rows.Next() {
		document, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		documents = append(documents, *document)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate documents: %w", err)
	}

	return documents, nil
}

// SetDocumentStatus rewrites the status of an existing document. Moves not
// allowed by the document lifecycle are rejected, setting the current status
// again is a no-op.
func (r *Repository) SetDocumentStatus(ctx context.Context, id string, status model.DocumentStatus) (*model.Document, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, model.ErrNotValid)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var rawStatus string
	err = tx.QueryRowContext(ctx, `SELECT status FROM documents WHERE id = ?`, id).Scan(&rawStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get document status: %w", err)
	}
	current := model.DocumentStatus(rawStatus)

	if current != status && !current.CanTransition(status) {
		return nil, fmt.Errorf("document %s cannot move from %s to %s: %w", id, current, status, model.ErrNotValid)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE documents SET status = ? WHERE id = ?`, status, id); err != nil {
		return nil, fmt.Errorf("could not update document status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Updated document status in repository: %s -> %s", id, status)
	return r.GetDocument(ctx, id)
}

// AppendDocumentSigners concatenates emails onto the signers of an existing
// document, inside a single transaction.
func (r *Repository) AppendDocumentSigners(ctx context.Context, id string, emails []string) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	var raw string
	err = tx.QueryRowContext(ctx, `SELECT signers FROM documents WHERE id = ?`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query document signers: %w", err)
	}

	signers, err := unmarshalSigners(raw)
	if err != nil {
		return nil, err
	}
	signers = append(signers, emails...)
	updated, err := marshalSigners(signers)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE documents SET signers = ? WHERE id = ?`, updated, id)
	if err != nil {
		return nil, fmt.Errorf("could not update document signers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	r.logger.Debugf("Appended %d signers to document in repository: %s", len(emails), id)
	return r.GetDocument(ctx, id)
}

// DeleteDocument deletes a document.
func (r *Repository) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete document: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted document from repository: %s", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository) scanOne(row rowScanner) (*model.Document, error) {
	var (
		d         model.Document
		rawStatus string
		signers   string
		createdAt int64
	)

	err := row.Scan(&d.ID, &d.Name, &rawStatus, &signers, &createdAt)
	if err != nil {
		return nil, err
	}

	d.Status = model.DocumentStatus(rawStatus)
	d.CreatedAt = time.Unix(createdAt, 0).UTC()
	d.Signers, err = unmarshalSigners(signers)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

func marshalSigners(signers []string) (string, error) {
	if signers == nil {
		signers = []string{}
	}
	raw, err := json.Marshal(signers)
	if err != nil {
		return "", fmt.Errorf("could not marshal signers: %w", err)
	}
	return string(raw), nil
}

func unmarshalSigners(raw string) ([]string, error) {
	signers := []string{}
	if err := json.Unmarshal([]byte(raw), &signers); err != nil {
		return nil, fmt.Errorf("could not unmarshal signers: %w", err)
	}
	return signers, nil
}
