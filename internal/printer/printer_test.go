package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/printer"
)

func documentFixture() model.Document {
	return model.Document{
		ID:        "01234567890ABCDEFGHIJKLMNOP",
		Name:      "contract.pdf",
		Status:    model.DocumentStatusSent,
		Signers:   []string{"x@y.com", "z@y.com"},
		CreatedAt: time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC),
	}
}

func TestTablePrinterPrintList(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(p.PrintList([]model.Document{documentFixture()}))

	out := buf.String()
	assert.Contains(out, "NAME")
	assert.Contains(out, "STATUS")
	assert.Contains(out, "SIGNERS")
	assert.Contains(out, "contract.pdf")
	assert.Contains(out, "sent")
	assert.Contains(out, "2")
}

func TestTablePrinterPrintListEmpty(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(p.PrintList(nil))
	assert.Empty(buf.String())
}

func TestTablePrinterPrintStatus(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(p.PrintStatus(documentFixture()))

	out := buf.String()
	assert.Contains(out, "Name:       contract.pdf")
	assert.Contains(out, "ID:         01234567890ABCDEFGHIJKLMNOP")
	assert.Contains(out, "Status:     sent")
	assert.Contains(out, "Signers:    x@y.com, z@y.com")
	assert.Contains(out, "Created:    2026-01-30 10:00:00 UTC")
}

func TestTablePrinterPrintStatusNoSigners(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	doc := documentFixture()
	doc.Signers = nil
	doc.Status = model.DocumentStatusPending

	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(p.PrintStatus(doc))
	assert.Contains(buf.String(), "Signers:    none")
}

func TestTablePrinterPrintFileList(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(p.PrintFileList([]model.FileRef{
		{Name: "a.pdf", SizeBytes: 1536},
		{Name: "b.pdf", SizeBytes: 100},
	}))

	out := buf.String()
	assert.Contains(out, "FILE")
	assert.Contains(out, "a.pdf")
	assert.Contains(out, "1.5 KB")
	assert.Contains(out, "100 B")
}

func TestJSONPrinterPrintList(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	require.NoError(p.PrintList([]model.Document{documentFixture()}))

	out := buf.String()
	assert.Contains(out, `"id": "01234567890ABCDEFGHIJKLMNOP"`)
	assert.Contains(out, `"name": "contract.pdf"`)
	assert.Contains(out, `"status": "sent"`)
	assert.Contains(out, `"signers": 2`)
	assert.Contains(out, `"created_at": "2026-01-30T10:00:00Z"`)
}

func TestJSONPrinterPrintStatus(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	require.NoError(p.PrintStatus(documentFixture()))

	out := buf.String()
	assert.Contains(out, `"status": "sent"`)
	assert.Contains(out, `"x@y.com"`)
	assert.Contains(out, `"z@y.com"`)
}

func TestJSONPrinterPrintStatusEmptySigners(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	doc := documentFixture()
	doc.Signers = nil

	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	require.NoError(p.PrintStatus(doc))
	assert.Contains(buf.String(), `"signers": []`)
}

func TestJSONPrinterPrintMessage(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	require.NoError(p.PrintMessage("Document deleted successfully"))
	assert.Equal(`{
  "message": "Document deleted successfully"
}`, strings.TrimSpace(buf.String()))
}
