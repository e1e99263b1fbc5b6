package upload

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/progress"
	"github.com/docsign/docsign/internal/storage"
)

// DefaultMaxFiles is the cap on the pending file list.
const DefaultMaxFiles = 10

// ServiceConfig is the configuration for the upload service.
type ServiceConfig struct {
	Repository storage.Repository
	Notifier   notify.Notifier
	// Duration is the simulated upload time, 2s when unset.
	Duration time.Duration
	// MaxFiles caps the pending file list, DefaultMaxFiles when unset.
	MaxFiles int
	// OnTick observes upload progress values.
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
	if c.Duration <= 0 {
		c.Duration = 2 * time.Second
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = DefaultMaxFiles
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Upload"})
	return nil
}

// Service handles the upload flow: collecting an uncommitted file list,
// driving one simulated upload run, and committing every collected file as a
// new pending document when the run completes.
type Service struct {
	repo     storage.Repository
	notifier notify.Notifier
	sim      *progress.Simulator
	maxFiles int
	logger   log.Logger

	mu    sync.Mutex
	files []model.FileRef
}

// NewService creates a new upload service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	sim, err := progress.NewSimulator(progress.SimulatorConfig{
		Duration: cfg.Duration,
		OnTick:   cfg.OnTick,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create simulator: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		notifier: cfg.Notifier,
		sim:      sim,
		maxFiles: cfg.MaxFiles,
		logger:   cfg.Logger,
	}, nil
}

// AddFiles appends a batch of files to the pending list. A batch that would
// push the list over the cap is rejected as a whole and the list stays
// untouched. Adding while an upload run is active is rejected.
func (s *Service) AddFiles(files ...model.FileRef) error {
	if s.sim.State().Running {
		return fmt.Errorf("an upload is in progress: %w", model.ErrNotValid)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.files)+len(files) > s.maxFiles {
		s.notifier.Error(fmt.Sprintf("Cannot add %d files, the maximum is %d", len(files), s.maxFiles))
		return fmt.Errorf("batch of %d files exceeds the %d file cap: %w", len(files), s.maxFiles, model.ErrTooManyFiles)
	}

	s.files = append(s.files, files...)
	s.logger.Debugf("Collected %d files for upload", len(s.files))
	return nil
}

// RemoveFile deletes the pending file at index. It is a no-op while an upload
// run is active or when the index is out of range.
func (s *Service) RemoveFile(index int) {
	if s.sim.State().Running {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.files) {
		return
	}
	s.files = append(s.files[:index], s.files[index+1:]...)
}

// Files returns a copy of the pending file list.
func (s *Service) Files() []model.FileRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]model.FileRef{}, s.files...)
}

// Progress returns a snapshot of the upload run.
func (s *Service) Progress() model.ProgressState {
	return s.sim.State()
}

// Submit starts the upload run. When it completes every collected file
// becomes a new pending document, the list is cleared and onDone receives the
// created documents. Submitting with an empty list or while a run is active
// is an error and starts nothing.
func (s *Service) Submit(ctx context.Context, onDone func(created []model.Document)) error {
	s.mu.Lock()
	if len(s.files) == 0 {
		s.mu.Unlock()
		s.notifier.Error("No files selected for upload")
		return fmt.Errorf("no files to upload: %w", model.ErrNotValid)
	}
	files := append([]model.FileRef{}, s.files...)
	s.mu.Unlock()

	started := s.sim.Start(func() {
		s.commit(ctx, files, onDone)
	})
	if !started {
		return fmt.Errorf("an upload is already in progress: %w", model.ErrNotValid)
	}

	s.logger.Debugf("Started upload run for %d files", len(files))
	return nil
}

// Cancel stops an active upload run without creating any document. The
// collected file list is preserved so the user can resubmit.
func (s *Service) Cancel() {
	s.sim.Cancel()
}

func (s *Service) commit(ctx context.Context, files []model.FileRef, onDone func(created []model.Document)) {
	created := make([]model.Document, 0, len(files))
	for _, file := range files {
		document := model.Document{
			ID:        ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
			Name:      file.Name,
			Status:    model.DocumentStatusPending,
			Signers:   []string{},
			CreatedAt: time.Now().UTC(),
		}

		if err := s.repo.CreateDocument(ctx, document); err != nil {
			s.logger.Errorf("Could not create document %q: %s", file.Name, err)
			s.notifier.Error(fmt.Sprintf("Could not upload %q", file.Name))
			continue
		}
		created = append(created, document)
	}

	s.mu.Lock()
	s.files = nil
	s.mu.Unlock()

	s.logger.Infof("Uploaded %d documents", len(created))
	s.notifier.Success("Documents uploaded successfully")
	if onDone != nil {
		onDone(created)
	}
}
