package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/docsign/docsign/internal/model"
)

// JSONPrinter prints document information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// listItem represents a document in the list output (subset of fields).
type listItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Signers   int       `json:"signers"`
	CreatedAt time.Time `json:"created_at"`
}

// statusOutput represents the full document status output.
type statusOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Signers   []string  `json:"signers"`
	CreatedAt time.Time `json:"created_at"`
}

// fileItem represents a file selected for upload.
type fileItem struct {
	Name      string `json:"name"`
	SizeBytes int64  `json:"size_bytes"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintList prints documents in JSON format with a subset of fields.
func (j *JSONPrinter) PrintList(documents []model.Document) error {
	items := make([]listItem, len(documents))
	for i, d := range documents {
		items[i] = listItem{
			ID:        d.ID,
			Name:      d.Name,
			Status:    string(d.Status),
			Signers:   len(d.Signers),
			CreatedAt: d.CreatedAt.UTC(),
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintStatus prints detailed document status in JSON format.
func (j *JSONPrinter) PrintStatus(document model.Document) error {
	signers := document.Signers
	if signers == nil {
		signers = []string{}
	}

	output := statusOutput{
		ID:        document.ID,
		Name:      document.Name,
		Status:    string(document.Status),
		Signers:   signers,
		CreatedAt: document.CreatedAt.UTC(),
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// PrintFileList prints files selected for upload in JSON format.
func (j *JSONPrinter) PrintFileList(files []model.FileRef) error {
	items := make([]fileItem, len(files))
	for i, f := range files {
		items[i] = fileItem{Name: f.Name, SizeBytes: f.SizeBytes}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(messageOutput{Message: msg})
}
