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
	"github.com/docsign/docsign/internal/storage"
)

// FinalizerConfig is the configuration for the signing finalizer.
type FinalizerConfig struct {
	Repository storage.Repository
	Notifier   notify.Notifier
	// SignDuration is the simulated time to collect the signatures, 2s when unset.
	SignDuration time.Duration
	// OnTick observes signing progress values.
	OnTick func(value int)
	Logger log.Logger
}

func (c *FinalizerConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}
	if c.SignDuration <= 0 {
		c.SignDuration = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.SignatureFinalizer"})
	return nil
}

// Finalizer runs the signing simulation that follows a confirmed signature
// request: a second, independent progress run modeling the time to collect
// the signatures, after which the document moves to signed. A single
// finalizer (and so a single top-level signing run) exists per coordinator.
type Finalizer struct {
	repo     storage.Repository
	notifier notify.Notifier
	sim      *progress.Simulator
	logger   log.Logger
}

// NewFinalizer creates a new signing finalizer.
func NewFinalizer(cfg FinalizerConfig) (*Finalizer, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sim, err := progress.NewSimulator(progress.SimulatorConfig{
		Duration: cfg.SignDuration,
		OnTick:   cfg.OnTick,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create simulator: %w", err)
	}

	return &Finalizer{
		repo:     cfg.Repository,
		notifier: cfg.Notifier,
		sim:      sim,
		logger:   cfg.Logger,
	}, nil
}

// Progress returns a snapshot of the signing run.
func (f *Finalizer) Progress() model.ProgressState { return f.sim.State() }

// Cancel stops an active signing run without mutating the document.
func (f *Finalizer) Cancel() { f.sim.Cancel() }

// Start begins the signing run for a document. On completion the document
// moves to signed and onSigned receives its id. Starting while a signing run
// is active is a no-op returning an error.
func (f *Finalizer) Start(ctx context.Context, documentID string, onSigned func(documentID string)) error {
	started := f.sim.Start(func() {
		f.commit(ctx, documentID, onSigned)
	})
	if !started {
		return fmt.Errorf("a signing simulation is already running: %w", model.ErrNotValid)
	}

	f.logger.Debugf("Started signing run for document %s", documentID)
	return nil
}

func (f *Finalizer) commit(ctx context.Context, documentID string, onSigned func(documentID string)) {
	_, err := f.repo.SetDocumentStatus(ctx, documentID, model.DocumentStatusSigned)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			f.logger.Warningf("Document %s disappeared before signing completed", documentID)
			f.notifier.Info("Document no longer exists")
			return
		}
		f.logger.Errorf("Could not mark document %s as signed: %s", documentID, err)
		f.notifier.Error("Could not complete the signature process")
		return
	}

	f.logger.Infof("Signature process completed for document %s", documentID)
	f.notifier.Success("Signature process completed")
	if onSigned != nil {
		onSigned(documentID)
	}
}
