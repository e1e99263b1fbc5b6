package list

import (
	"context"
	"fmt"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage"
)

// ServiceConfig is the configuration for the list service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})
	return nil
}

// Service lists documents.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request are the options for listing documents.
type Request struct {
	// StatusFilter restricts the result to documents with this status. Empty
	// means every document.
	StatusFilter model.DocumentStatus
}

// Run lists documents ordered by creation time.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Document, error) {
	if req.StatusFilter != "" && !req.StatusFilter.IsValid() {
		return nil, fmt.Errorf("unknown status %q: %w", req.StatusFilter, model.ErrNotValid)
	}

	docs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list documents: %w", err)
	}

	if req.StatusFilter == "" {
		return docs, nil
	}

	filtered := []model.Document{}
	for _, d := range docs {
		if d.Status == req.StatusFilter {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}
