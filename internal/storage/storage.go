package storage

import (
	"context"

	"github.com/docsign/docsign/internal/model"
)

// Repository is the interface for document persistence. Every mutation is
// atomic relative to the callers: concurrent flows never observe the document
// collection mid-mutation.
type Repository interface {
	// CreateDocument appends a new document. The ID must be unique.
	CreateDocument(ctx context.Context, d model.Document) error
	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	// ListDocuments returns all documents ordered by creation time.
	ListDocuments(ctx context.Context) ([]model.Document, error)
	// SetDocumentStatus rewrites the status of the document and returns the
	// updated document, or model.ErrNotFound when the ID is absent.
	SetDocumentStatus(ctx context.Context, id string, status model.DocumentStatus) (*model.Document, error)
	// AppendDocumentSigners concatenates emails onto the existing signers list
	// (never replaces) and returns the updated document, or model.ErrNotFound
	// when the ID is absent.
	AppendDocumentSigners(ctx context.Context, id string, emails []string) (*model.Document, error)
	// DeleteDocument deletes a document by ID.
	DeleteDocument(ctx context.Context, id string) error
}

// EventType is the type of change applied to the document collection.
type EventType string

const (
	// EventTypeCreated notifies a new document.
	EventTypeCreated EventType = "created"
	// EventTypeUpdated notifies a status or signers change.
	EventTypeUpdated EventType = "updated"
	// EventTypeDeleted notifies a removal.
	EventTypeDeleted EventType = "deleted"
)

// Event describes a change applied to the document collection.
type Event struct {
	Type     EventType
	Document model.Document
}

// Watchable is implemented by repositories that can notify read-model
// consumers of changes. Subscribers receive events on a buffered channel and
// must call the returned unsubscribe function when done.
type Watchable interface {
	Subscribe() (events <-chan Event, unsubscribe func())
}
