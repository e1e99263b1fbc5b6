package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage"
)

// subscriberBuffer is the event channel capacity per subscriber. A slow
// consumer drops events instead of blocking a mutation.
const subscriberBuffer = 64

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository. It is the
// canonical backend of the engine: all mutations are serialized under one
// mutex, so each operation is a single atomic step for every flow sharing it.
type Repository struct {
	documents map[string]model.Document
	subs      map[int]chan storage.Event
	nextSubID int
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		documents: make(map[string]model.Document),
		subs:      make(map[int]chan storage.Event),
		logger:    cfg.Logger,
	}, nil
}

// CreateDocument creates a new document in the repository.
func (r *Repository) CreateDocument(ctx context.Context, d model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	if _, ok := r.documents[d.ID]; ok {
		return fmt.Errorf("document with id %s: %w", d.ID, model.ErrAlreadyExists)
	}

	r.documents[d.ID] = copyDocument(d)
	r.logger.Debugf("Created document in repository: %s", d.ID)
	r.publish(storage.Event{Type: storage.EventTypeCreated, Document: copyDocument(d)})

	return nil
}

// GetDocument retrieves a document by ID.
func (r *Repository) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	document, ok := r.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	documentCopy := copyDocument(document)
	return &documentCopy, nil
}

// ListDocuments returns all documents ordered by creation time, then ID.
func (r *Repository) ListDocuments(ctx context.Context) ([]model.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	documents := make([]model.Document, 0, len(r.documents))
	for _, document := range r.documents {
		documents = append(documents, copyDocument(document))
	}

	sort.Slice(documents, func(i, j int) bool {
		if !documents[i].CreatedAt.Equal(documents[j].CreatedAt) {
			return documents[i].CreatedAt.Before(documents[j].CreatedAt)
		}
		return documents[i].ID < documents[j].ID
	})

	return documents, nil
}

// SetDocumentStatus rewrites the status of an existing document. Moves not
// allowed by the document lifecycle are rejected, setting the current status
// again is a no-op.
func (r *Repository) SetDocumentStatus(ctx context.Context, id string, status model.DocumentStatus) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !status.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", status, model.ErrNotValid)
	}

	document, ok := r.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	if document.Status != status && !document.Status.CanTransition(status) {
		return nil, fmt.Errorf("document %s cannot move from %s to %s: %w", id, document.Status, status, model.ErrNotValid)
	}

	document.Status = status
	r.documents[id] = document
	r.logger.Debugf("Updated document status in repository: %s -> %s", id, status)
	r.publish(storage.Event{Type: storage.EventTypeUpdated, Document: copyDocument(document)})

	documentCopy := copyDocument(document)
	return &documentCopy, nil
}

// AppendDocumentSigners concatenates emails onto the signers of an existing document.
func (r *Repository) AppendDocumentSigners(ctx context.Context, id string, emails []string) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	document, ok := r.documents[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	document.Signers = append(append([]string{}, document.Signers...), emails...)
	r.documents[id] = document
	r.logger.Debugf("Appended %d signers to document in repository: %s", len(emails), id)
	r.publish(storage.Event{Type: storage.EventTypeUpdated, Document: copyDocument(document)})

	documentCopy := copyDocument(document)
	return &documentCopy, nil
}

// DeleteDocument deletes a document.
func (r *Repository) DeleteDocument(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	document, ok := r.documents[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	delete(r.documents, id)
	r.logger.Debugf("Deleted document from repository: %s", id)
	r.publish(storage.Event{Type: storage.EventTypeDeleted, Document: copyDocument(document)})

	return nil
}

// Subscribe registers a change-event subscriber. Events are delivered on a
// buffered channel, the returned function unregisters and closes it.
func (r *Repository) Subscribe() (<-chan storage.Event, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextSubID
	r.nextSubID++
	ch := make(chan storage.Event, subscriberBuffer)
	r.subs[id] = ch

	unsubscribe := func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		sub, ok := r.subs[id]
		if !ok {
			return
		}
		delete(r.subs, id)
		close(sub)
	}

	return ch, unsubscribe
}

// publish must be called with the write lock held.
func (r *Repository) publish(ev storage.Event) {
	for _, sub := range r.subs {
		select {
		case sub <- ev:
		default:
			// Slow consumer, drop instead of blocking the mutation.
		}
	}
}

func copyDocument(d model.Document) model.Document {
	d.Signers = append([]string{}, d.Signers...)
	return d
}
