package model

// ModalKind identifies the flow panel a modal shows.
type ModalKind string

const (
	// ModalKindNone is the kind of the empty descriptor.
	ModalKindNone ModalKind = ""
	// ModalKindUpload shows the upload panel.
	ModalKindUpload ModalKind = "upload"
	// ModalKindSignatureRequest shows the recipient drafts panel for a document.
	ModalKindSignatureRequest ModalKind = "signature-request"
	// ModalKindEmailList shows the read-only recipients panel for a document.
	ModalKindEmailList ModalKind = "email-list"
	// ModalKindConfirmDelete shows the delete confirmation panel for a document.
	ModalKindConfirmDelete ModalKind = "confirm-delete"
)

// ModalBody is the tagged content of a modal. Kind selects the panel and
// DocumentID carries the target document for the flows that operate on one.
// The rendering layer maps each kind to a view, the engine never holds any
// rendering vocabulary.
type ModalBody struct {
	Kind       ModalKind
	DocumentID string
}

// ModalDescriptor describes the currently active modal, if any. At most one
// descriptor is active process-wide. A closed descriptor has an empty title
// and body.
type ModalDescriptor struct {
	Open  bool
	Title string
	Body  ModalBody
}

// ProgressState is a snapshot of a progress simulation.
type ProgressState struct {
	// Value is the current progress in the 0..100 range.
	Value int
	// Running indicates whether the simulation is advancing.
	Running bool
}
