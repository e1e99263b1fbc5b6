package modal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/modal"
	"github.com/docsign/docsign/internal/model"
)

func TestControllerSingleSlot(t *testing.T) {
	require := require.New(t)

	ctrl, err := modal.NewController(modal.ControllerConfig{})
	require.NoError(err)

	// Empty at creation.
	assert.Equal(t, model.ModalDescriptor{}, ctrl.Descriptor())

	// Open sets the descriptor.
	ctrl.Open("Upload documents", model.ModalBody{Kind: model.ModalKindUpload})
	desc := ctrl.Descriptor()
	assert.True(t, desc.Open)
	assert.Equal(t, "Upload documents", desc.Title)
	assert.Equal(t, model.ModalKindUpload, desc.Body.Kind)

	// Opening again replaces unconditionally, last caller wins.
	ctrl.Open("Confirm deletion", model.ModalBody{Kind: model.ModalKindConfirmDelete, DocumentID: "doc-1"})
	desc = ctrl.Descriptor()
	assert.True(t, desc.Open)
	assert.Equal(t, "Confirm deletion", desc.Title)
	assert.Equal(t, model.ModalKindConfirmDelete, desc.Body.Kind)
	assert.Equal(t, "doc-1", desc.Body.DocumentID)

	// Close resets to the empty descriptor: no title, no body.
	ctrl.Close()
	assert.Equal(t, model.ModalDescriptor{}, ctrl.Descriptor())
}

func TestControllerConfirm(t *testing.T) {
	require := require.New(t)

	ctrl, err := modal.NewController(modal.ControllerConfig{})
	require.NoError(err)

	var gotKind model.ModalKind
	var gotDocumentID string
	calls := 0
	ctrl.SetConfirmHandler(func(kind model.ModalKind, documentID string) {
		gotKind = kind
		gotDocumentID = documentID
		calls++
	})

	ctrl.Open("Send documents to sign", model.ModalBody{Kind: model.ModalKindSignatureRequest, DocumentID: "doc-1"})
	ctrl.Confirm(model.ModalKindSignatureRequest, "doc-1")

	// Confirm closes first, then forwards.
	assert.Equal(t, model.ModalDescriptor{}, ctrl.Descriptor())
	assert.Equal(t, model.ModalKindSignatureRequest, gotKind)
	assert.Equal(t, "doc-1", gotDocumentID)
	assert.Equal(t, 1, calls)
}

func TestControllerConfirmWithoutHandler(t *testing.T) {
	require := require.New(t)

	ctrl, err := modal.NewController(modal.ControllerConfig{})
	require.NoError(err)

	ctrl.Open("Confirm deletion", model.ModalBody{Kind: model.ModalKindConfirmDelete, DocumentID: "doc-1"})

	// No handler registered, confirm still closes the modal.
	ctrl.Confirm(model.ModalKindConfirmDelete, "doc-1")
	assert.Equal(t, model.ModalDescriptor{}, ctrl.Descriptor())
}
