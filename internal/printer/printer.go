package printer

import "github.com/docsign/docsign/internal/model"

// Printer knows how to print document information in different formats.
type Printer interface {
	PrintList(documents []model.Document) error
	PrintStatus(document model.Document) error
	PrintFileList(files []model.FileRef) error
	PrintMessage(msg string) error
}
