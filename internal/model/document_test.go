package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docsign/docsign/internal/model"
)

func TestDocumentValidate(t *testing.T) {
	tests := map[string]struct {
		document model.Document
		expErr   bool
	}{
		"A valid document should pass validation": {
			document: model.Document{
				ID:     "01JGXYZABCDEF1234567890ABC",
				Name:   "contract.pdf",
				Status: model.DocumentStatusPending,
			},
		},

		"A document without ID should fail": {
			document: model.Document{
				Name:   "contract.pdf",
				Status: model.DocumentStatusPending,
			},
			expErr: true,
		},

		"A document without name should fail": {
			document: model.Document{
				ID:     "01JGXYZABCDEF1234567890ABC",
				Status: model.DocumentStatusPending,
			},
			expErr: true,
		},

		"A document with an unknown status should fail": {
			document: model.Document{
				ID:     "01JGXYZABCDEF1234567890ABC",
				Name:   "contract.pdf",
				Status: model.DocumentStatus("archived"),
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.document.Validate()
			if test.expErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocumentStatusCanTransition(t *testing.T) {
	tests := map[string]struct {
		from model.DocumentStatus
		to   model.DocumentStatus
		exp  bool
	}{
		"Pending can move to sent":       {from: model.DocumentStatusPending, to: model.DocumentStatusSent, exp: true},
		"Sent can move to signed":        {from: model.DocumentStatusSent, to: model.DocumentStatusSigned, exp: true},
		"Sent can move to rejected":      {from: model.DocumentStatusSent, to: model.DocumentStatusRejected, exp: true},
		"Pending cannot move to signed":  {from: model.DocumentStatusPending, to: model.DocumentStatusSigned, exp: false},
		"Pending cannot reject":          {from: model.DocumentStatusPending, to: model.DocumentStatusRejected, exp: false},
		"Sent cannot move back":          {from: model.DocumentStatusSent, to: model.DocumentStatusPending, exp: false},
		"Signed is terminal":             {from: model.DocumentStatusSigned, to: model.DocumentStatusSent, exp: false},
		"Rejected is terminal":           {from: model.DocumentStatusRejected, to: model.DocumentStatusSigned, exp: false},
		"Signed cannot move to pending":  {from: model.DocumentStatusSigned, to: model.DocumentStatusPending, exp: false},
		"Rejected cannot move to signed": {from: model.DocumentStatusRejected, to: model.DocumentStatusSigned, exp: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.exp, test.from.CanTransition(test.to))
		})
	}
}
