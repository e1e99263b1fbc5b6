package model

import (
	"fmt"
	"time"
)

// DocumentStatus represents the signature lifecycle status of a document.
type DocumentStatus string

const (
	// DocumentStatusPending indicates the document is uploaded and no signature request has been sent.
	DocumentStatusPending DocumentStatus = "pending"
	// DocumentStatusSent indicates a signature request has been sent to the recipients.
	DocumentStatusSent DocumentStatus = "sent"
	// DocumentStatusSigned indicates all requested signatures have been collected.
	DocumentStatusSigned DocumentStatus = "signed"
	// DocumentStatusRejected indicates a recipient rejected the signature request.
	// No flow produces it today, it stays representable for a future rejection flow.
	DocumentStatusRejected DocumentStatus = "rejected"
)

// IsValid returns true when the status is a known lifecycle status.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusPending, DocumentStatusSent, DocumentStatusSigned, DocumentStatusRejected:
		return true
	}
	return false
}

// validTransitions holds the allowed lifecycle transitions. The lifecycle only
// moves forward, nothing transitions back to pending.
var validTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentStatusPending: {DocumentStatusSent},
	DocumentStatusSent:    {DocumentStatusSigned, DocumentStatusRejected},
}

// CanTransition returns true when moving from the current status to the given
// one is a valid lifecycle transition.
func (s DocumentStatus) CanTransition(to DocumentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Document represents an uploaded document tracked through the signature
// lifecycle. ID is immutable once created, status and signers are the only
// mutable fields.
type Document struct {
	ID        string
	Name      string
	Status    DocumentStatus
	Signers   []string
	CreatedAt time.Time
}

// Validate validates the document.
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("id is required: %w", ErrNotValid)
	}
	if d.Name == "" {
		return fmt.Errorf("name is required: %w", ErrNotValid)
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("unknown status %q: %w", d.Status, ErrNotValid)
	}
	return nil
}

// FileRef is an opaque handle to a file selected for upload. Only the name is
// used by the engine, file bytes are never read.
type FileRef struct {
	Name      string
	SizeBytes int64
}
