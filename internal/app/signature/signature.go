package signature

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/progress"
	"github.com/docsign/docsign/internal/recipients"
	"github.com/docsign/docsign/internal/storage"
)

// ServiceConfig is the configuration for the signature-request service.
type ServiceConfig struct {
	Repository storage.Repository
	Notifier   notify.Notifier
	// SendDuration is the simulated time to send a request, 2s when unset.
	SendDuration time.Duration
	// OnTick observes send progress values.
	OnTick func(value int)
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}
	if c.SendDuration <= 0 {
		c.SendDuration = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Signature"})
	return nil
}

// Service creates signature-request sessions, one per open request panel.
type Service struct {
	repo         storage.Repository
	notifier     notify.Notifier
	sendDuration time.Duration
	onTick       func(int)
	logger       log.Logger
}

// NewService creates a new signature-request service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:         cfg.Repository,
		notifier:     cfg.Notifier,
		sendDuration: cfg.SendDuration,
		onTick:       cfg.OnTick,
		logger:       cfg.Logger,
	}, nil
}

// NewSession creates the state for one signature-request panel targeting a
// document: a fresh recipient editor and a dedicated send simulator.
func (s *Service) NewSession(documentID string) (*Session, error) {
	sim, err := progress.NewSimulator(progress.SimulatorConfig{
		Duration: s.sendDuration,
		OnTick:   s.onTick,
		Logger:   s.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create simulator: %w", err)
	}

	return &Session{
		documentID: documentID,
		editor:     recipients.NewEditor(),
		sim:        sim,
		repo:       s.repo,
		notifier:   s.notifier,
		logger:     s.logger.WithValues(log.Kv{"document": documentID}),
	}, nil
}

// Session is the state of one signature-request panel. Its lifetime is bound
// to the modal that shows it: closing the modal cancels the session.
type Session struct {
	documentID string
	editor     *recipients.Editor
	sim        *progress.Simulator
	repo       storage.Repository
	notifier   notify.Notifier
	logger     log.Logger
}

// DocumentID returns the target document of the session.
func (s *Session) DocumentID() string { return s.documentID }

// Editor returns the recipient draft editor of the session.
func (s *Session) Editor() *recipients.Editor { return s.editor }

// Progress returns a snapshot of the send run.
func (s *Session) Progress() model.ProgressState { return s.sim.State() }

// Cancel stops an active send run without mutating the document.
func (s *Session) Cancel() { s.sim.Cancel() }

// Submit validates the drafts and starts the send run. Validation happens
// before anything mutates: flagged drafts or an empty recipient set abort
// with an error and no run starts. On completion the recipients are appended
// to the document signers, the status moves to sent, and onSent receives the
// document id.
func (s *Session) Submit(ctx context.Context, onSent func(documentID string)) error {
	if s.editor.HasErrors() {
		s.notifier.Error("One or more recipient emails are invalid")
		return fmt.Errorf("invalid recipient email: %w", model.ErrNotValid)
	}

	emails := s.editor.Recipients()
	if len(emails) == 0 {
		s.notifier.Error("At least one recipient is required")
		return fmt.Errorf("at least one recipient is required: %w", model.ErrNotValid)
	}

	started := s.sim.Start(func() {
		s.commit(ctx, emails, onSent)
	})
	if !started {
		return fmt.Errorf("a signature request is already being sent: %w", model.ErrNotValid)
	}

	s.logger.Debugf("Started send run with %d recipients", len(emails))
	return nil
}

func (s *Session) commit(ctx context.Context, emails []string, onSent func(documentID string)) {
	_, err := s.repo.AppendDocumentSigners(ctx, s.documentID, emails)
	if err != nil {
		s.reportCommitError(err, "append signers")
		return
	}

	_, err = s.repo.SetDocumentStatus(ctx, s.documentID, model.DocumentStatusSent)
	if err != nil {
		s.reportCommitError(err, "set status")
		return
	}

	s.logger.Infof("Signature request sent to %d recipients", len(emails))
	s.notifier.Info("Signature request sent")
	if onSent != nil {
		onSent(s.documentID)
	}
}

// reportCommitError surfaces a late mutation failure. An absent document is a
// valid steady state (deleted meanwhile), not a programming error.
func (s *Session) reportCommitError(err error, op string) {
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warningf("Document disappeared before %s", op)
		s.notifier.Info("Document no longer exists")
		return
	}
	s.logger.Errorf("Could not %s: %s", op, err)
	s.notifier.Error("Could not send the signature request")
}
