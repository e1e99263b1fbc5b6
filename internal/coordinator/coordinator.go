package coordinator

import (
	"context"
	"fmt"
	"sync"

	"github.com/docsign/docsign/internal/app/remove"
	"github.com/docsign/docsign/internal/app/signature"
	"github.com/docsign/docsign/internal/app/upload"
	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/modal"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage"
)

// Modal titles, one per flow panel.
const (
	titleUpload           = "Upload documents"
	titleSignatureRequest = "Send documents to sign"
	titleRecipients       = "Recipients"
	titleConfirmDelete    = "Confirm deletion"
)

// Config is the configuration for the coordinator.
type Config struct {
	Repository storage.Repository
	Modals     *modal.Controller
	Upload     *upload.Service
	Signatures *signature.Service
	Finalizer  *signature.Finalizer
	Remover    *remove.Service

	// OnUploaded observes the documents created by a completed upload run.
	OnUploaded func(created []model.Document)
	// OnSigned observes a document reaching the signed status.
	OnSigned func(documentID string)
	// OnDeleted observes a completed delete flow.
	OnDeleted func(documentID string)

	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Modals == nil {
		return fmt.Errorf("modal controller is required")
	}
	if c.Upload == nil {
		return fmt.Errorf("upload service is required")
	}
	if c.Signatures == nil {
		return fmt.Errorf("signature service is required")
	}
	if c.Finalizer == nil {
		return fmt.Errorf("signature finalizer is required")
	}
	if c.Remover == nil {
		return fmt.Errorf("remove service is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "coordinator.Coordinator"})
	return nil
}

// Coordinator routes every document action through the flow services and the
// single modal slot. It owns the lifetime of the active signature-request
// session: the session exists exactly while its modal is open.
type Coordinator struct {
	repo       storage.Repository
	modals     *modal.Controller
	upload     *upload.Service
	signatures *signature.Service
	finalizer  *signature.Finalizer
	remover    *remove.Service

	onUploaded func([]model.Document)
	onSigned   func(string)
	onDeleted  func(string)

	logger log.Logger

	// mu guards session, which completion callbacks reach from the
	// simulation goroutines.
	mu      sync.Mutex
	session *signature.Session
}

// New creates a new coordinator and registers itself as the modal
// confirmation handler.
func New(cfg Config) (*Coordinator, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Coordinator{
		repo:       cfg.Repository,
		modals:     cfg.Modals,
		upload:     cfg.Upload,
		signatures: cfg.Signatures,
		finalizer:  cfg.Finalizer,
		remover:    cfg.Remover,
		onUploaded: cfg.OnUploaded,
		onSigned:   cfg.OnSigned,
		onDeleted:  cfg.OnDeleted,
		logger:     cfg.Logger,
	}
	c.modals.SetConfirmHandler(c.handleConfirm)

	return c, nil
}

// Modals returns the modal controller driven by the coordinator.
func (c *Coordinator) Modals() *modal.Controller { return c.modals }

// UploadService returns the upload flow service.
func (c *Coordinator) UploadService() *upload.Service { return c.upload }

// FinalizerProgress returns a snapshot of the top-level signing run.
func (c *Coordinator) FinalizerProgress() model.ProgressState { return c.finalizer.Progress() }

// ActiveSession returns the signature-request session bound to the open
// modal, nil when none is open.
func (c *Coordinator) ActiveSession() *signature.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.session
}

// OpenUpload opens the upload panel.
func (c *Coordinator) OpenUpload() {
	c.closeActiveFlow()
	c.modals.Open(titleUpload, model.ModalBody{Kind: model.ModalKindUpload})
}

// OpenSignatureRequest opens the recipient drafts panel for a document,
// binding a fresh session to it. Opening against a missing document fails.
func (c *Coordinator) OpenSignatureRequest(ctx context.Context, documentID string) error {
	if _, err := c.repo.GetDocument(ctx, documentID); err != nil {
		return fmt.Errorf("could not get document: %w", err)
	}

	session, err := c.signatures.NewSession(documentID)
	if err != nil {
		return fmt.Errorf("could not create signature session: %w", err)
	}

	c.closeActiveFlow()
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.modals.Open(titleSignatureRequest, model.ModalBody{
		Kind:       model.ModalKindSignatureRequest,
		DocumentID: documentID,
	})
	return nil
}

// OpenRecipients opens the read-only recipients panel for a document.
func (c *Coordinator) OpenRecipients(ctx context.Context, documentID string) error {
	if _, err := c.repo.GetDocument(ctx, documentID); err != nil {
		return fmt.Errorf("could not get document: %w", err)
	}

	c.closeActiveFlow()
	c.modals.Open(titleRecipients, model.ModalBody{
		Kind:       model.ModalKindEmailList,
		DocumentID: documentID,
	})
	return nil
}

// OpenDeleteConfirm opens the delete confirmation panel for a document. The
// id is not verified here: a stale id resolves at delete time as an
// already-satisfied outcome.
func (c *Coordinator) OpenDeleteConfirm(documentID string) {
	c.closeActiveFlow()
	c.modals.Open(titleConfirmDelete, model.ModalBody{
		Kind:       model.ModalKindConfirmDelete,
		DocumentID: documentID,
	})
}

// CloseModal dismisses the active modal, cancelling whatever flow run it was
// showing. Repository state is never touched by a dismissal.
func (c *Coordinator) CloseModal() {
	c.closeActiveFlow()
	c.modals.Close()
}

// closeActiveFlow cancels the run bound to the current modal, if any, and
// drops the signature session. Opening a modal over another one goes through
// here so the replaced flow never keeps running unobserved.
func (c *Coordinator) closeActiveFlow() {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.mu.Unlock()

	switch c.modals.Descriptor().Body.Kind {
	case model.ModalKindUpload:
		c.upload.Cancel()
	case model.ModalKindSignatureRequest:
		if session != nil {
			session.Cancel()
		}
	}
}

// SubmitUpload starts the upload run of the open upload panel. When the run
// completes the modal closes itself.
func (c *Coordinator) SubmitUpload(ctx context.Context) error {
	err := c.upload.Submit(ctx, func(created []model.Document) {
		if c.modals.Descriptor().Body.Kind == model.ModalKindUpload {
			c.modals.Close()
		}
		if c.onUploaded != nil {
			c.onUploaded(created)
		}
	})
	if err != nil {
		return fmt.Errorf("could not submit upload: %w", err)
	}
	return nil
}

// SubmitSignatureRequest starts the send run of the open request panel. When
// the run completes the modal confirms itself, which chains into the
// top-level signing run.
func (c *Coordinator) SubmitSignatureRequest(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()
	if session == nil {
		return fmt.Errorf("no signature request panel is open: %w", model.ErrNotValid)
	}

	err := session.Submit(ctx, func(documentID string) {
		c.mu.Lock()
		c.session = nil
		c.mu.Unlock()
		c.modals.Confirm(model.ModalKindSignatureRequest, documentID)
	})
	if err != nil {
		return fmt.Errorf("could not submit signature request: %w", err)
	}
	return nil
}

// ConfirmDelete confirms the open delete panel, which chains into the delete
// flow for its document.
func (c *Coordinator) ConfirmDelete() error {
	desc := c.modals.Descriptor()
	if desc.Body.Kind != model.ModalKindConfirmDelete {
		return fmt.Errorf("no delete confirmation panel is open: %w", model.ErrNotValid)
	}

	c.modals.Confirm(model.ModalKindConfirmDelete, desc.Body.DocumentID)
	return nil
}

// handleConfirm chains a confirmed modal into its follow-up flow. It runs
// detached from the confirming caller, so it carries its own context.
func (c *Coordinator) handleConfirm(kind model.ModalKind, documentID string) {
	ctx := context.Background()

	switch kind {
	case model.ModalKindSignatureRequest:
		err := c.finalizer.Start(ctx, documentID, func(id string) {
			if c.onSigned != nil {
				c.onSigned(id)
			}
		})
		if err != nil {
			c.logger.Errorf("Could not start the signing run for %s: %s", documentID, err)
		}
	case model.ModalKindConfirmDelete:
		if err := c.remover.Run(ctx, documentID); err != nil {
			c.logger.Errorf("Could not delete document %s: %s", documentID, err)
			return
		}
		if c.onDeleted != nil {
			c.onDeleted(documentID)
		}
	default:
		c.logger.Warningf("Confirmed modal with no follow-up flow: %s", kind)
	}
}
