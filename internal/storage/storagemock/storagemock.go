package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/docsign/docsign/internal/model"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

// CreateDocument mocks storage.Repository.
func (m *MockRepository) CreateDocument(ctx context.Context, d model.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// GetDocument mocks storage.Repository.
func (m *MockRepository) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

// ListDocuments mocks storage.Repository.
func (m *MockRepository) ListDocuments(ctx context.Context) ([]model.Document, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

// SetDocumentStatus mocks storage.Repository.
func (m *MockRepository) SetDocumentStatus(ctx context.Context, id string, status model.DocumentStatus) (*model.Document, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

// AppendDocumentSigners mocks storage.Repository.
func (m *MockRepository) AppendDocumentSigners(ctx context.Context, id string, emails []string) (*model.Document, error) {
	args := m.Called(ctx, id, emails)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

// DeleteDocument mocks storage.Repository.
func (m *MockRepository) DeleteDocument(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
