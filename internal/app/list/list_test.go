package list_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/app/list"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	docs := []model.Document{
		{ID: "doc1", Name: "a.pdf", Status: model.DocumentStatusPending},
		{ID: "doc2", Name: "b.pdf", Status: model.DocumentStatusSent},
		{ID: "doc3", Name: "c.pdf", Status: model.DocumentStatusSigned},
		{ID: "doc4", Name: "d.pdf", Status: model.DocumentStatusSent},
	}

	tests := map[string]struct {
		req     list.Request
		mock    func(r *storagemock.MockRepository)
		expDocs []model.Document
		expErr  bool
	}{
		"Listing without a filter should return every document.": {
			req: list.Request{},
			mock: func(r *storagemock.MockRepository) {
				r.On("ListDocuments", mock.Anything).Once().Return(docs, nil)
			},
			expDocs: docs,
		},

		"Listing with a status filter should return only the matching documents.": {
			req: list.Request{StatusFilter: model.DocumentStatusSent},
			mock: func(r *storagemock.MockRepository) {
				r.On("ListDocuments", mock.Anything).Once().Return(docs, nil)
			},
			expDocs: []model.Document{
				{ID: "doc2", Name: "b.pdf", Status: model.DocumentStatusSent},
				{ID: "doc4", Name: "d.pdf", Status: model.DocumentStatusSent},
			},
		},

		"Listing with an unknown status should fail.": {
			req:    list.Request{StatusFilter: "wrong"},
			mock:   func(r *storagemock.MockRepository) {},
			expErr: true,
		},

		"A storage failure should be returned.": {
			req: list.Request{},
			mock: func(r *storagemock.MockRepository) {
				r.On("ListDocuments", mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			repo := &storagemock.MockRepository{}
			test.mock(repo)

			svc, err := list.NewService(list.ServiceConfig{Repository: repo})
			require.NoError(err)

			got, err := svc.Run(context.TODO(), test.req)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expDocs, got)
			}
			repo.AssertExpectations(t)
		})
	}
}
