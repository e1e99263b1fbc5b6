package modal

import (
	"fmt"
	"sync"

	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
)

// ConfirmHandler receives the flow kind and the document id payload after a
// modal was confirmed and dismissed. It lets nested flows notify their owner
// without holding a reference to it.
type ConfirmHandler func(kind model.ModalKind, documentID string)

// ControllerConfig is the configuration for the modal controller.
type ControllerConfig struct {
	Logger log.Logger
}

func (c *ControllerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "modal.Controller"})
	return nil
}

// Controller owns the single active modal descriptor. The single slot is what
// enforces the at-most-one-modal invariant: opening while another modal is
// active replaces it, last caller wins, there is no queueing.
type Controller struct {
	logger log.Logger

	mu        sync.Mutex
	desc      model.ModalDescriptor
	onConfirm ConfirmHandler
}

// NewController creates a new modal controller with an empty descriptor.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{logger: cfg.Logger}, nil
}

// SetConfirmHandler registers the handler invoked by Confirm. The last
// registered handler wins.
func (c *Controller) SetConfirmHandler(h ConfirmHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onConfirm = h
}

// Open replaces the current descriptor unconditionally.
func (c *Controller) Open(title string, body model.ModalBody) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.desc = model.ModalDescriptor{Open: true, Title: title, Body: body}
	c.logger.Debugf("Opened modal: %s", body.Kind)
}

// Close resets the descriptor to the empty one.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.desc = model.ModalDescriptor{}
	c.logger.Debugf("Closed modal")
}

// Confirm closes the modal and forwards the flow kind and payload to the
// registered confirmation handler, outside the controller lock.
func (c *Controller) Confirm(kind model.ModalKind, documentID string) {
	c.mu.Lock()
	c.desc = model.ModalDescriptor{}
	handler := c.onConfirm
	c.mu.Unlock()

	c.logger.Debugf("Confirmed modal: %s (document: %s)", kind, documentID)
	if handler != nil {
		handler(kind, documentID)
	}
}

// Descriptor returns a snapshot of the current descriptor.
func (c *Controller) Descriptor() model.ModalDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.desc
}
