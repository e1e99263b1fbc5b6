package view

import (
	"context"
	"fmt"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage"
)

// ServiceConfig is the configuration for the view service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.View"})
	return nil
}

// Service reads single documents, signers included.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new view service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Run retrieves a document by id.
func (s *Service) Run(ctx context.Context, id string) (*model.Document, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get document: %w", err)
	}

	return doc, nil
}
