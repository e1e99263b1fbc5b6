package remove

import (
	"context"
	"errors"
	"fmt"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/storage"
)

// ServiceConfig is the configuration for the remove service.
type ServiceConfig struct {
	Repository storage.Repository
	Notifier   notify.Notifier
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Notifier == nil {
		c.Notifier = notify.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})
	return nil
}

// Service deletes documents.
type Service struct {
	repo     storage.Repository
	notifier notify.Notifier
	logger   log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
	}, nil
}

// Run deletes a document by id. An absent id is an already-satisfied outcome,
// not an error: another actor may have deleted the document first.
func (s *Service) Run(ctx context.Context, id string) error {
	err := s.repo.DeleteDocument(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debugf("Document %s was already deleted", id)
			s.notifier.Info("Document was already deleted")
			return nil
		}
		return fmt.Errorf("could not delete document: %w", err)
	}

	s.logger.Infof("Deleted document: %s", id)
	s.notifier.Success("Document deleted successfully")
	return nil
}
