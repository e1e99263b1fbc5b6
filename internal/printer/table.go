package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/docsign/docsign/internal/model"
)

// TablePrinter prints document information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints documents in a table format.
func (t *TablePrinter) PrintList(documents []model.Document) error {
	if len(documents) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "NAME\tSTATUS\tSIGNERS\tCREATED")

	// Print rows
	for _, d := range documents {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", d.Name, d.Status, len(d.Signers), TimeAgo(d.CreatedAt))
	}

	return nil
}

// PrintStatus prints detailed document status.
func (t *TablePrinter) PrintStatus(document model.Document) error {
	fmt.Fprintf(t.writer, "Name:       %s\n", document.Name)
	fmt.Fprintf(t.writer, "ID:         %s\n", document.ID)
	fmt.Fprintf(t.writer, "Status:     %s\n", document.Status)
	fmt.Fprintf(t.writer, "Created:    %s\n", FormatTimestamp(document.CreatedAt))

	if len(document.Signers) == 0 {
		fmt.Fprintf(t.writer, "Signers:    none\n")
		return nil
	}

	fmt.Fprintf(t.writer, "Signers:    %s\n", strings.Join(document.Signers, ", "))
	return nil
}

// PrintFileList prints files selected for upload in a table format.
func (t *TablePrinter) PrintFileList(files []model.FileRef) error {
	if len(files) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "FILE\tSIZE")

	// Print rows
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, FormatBytes(f.SizeBytes))
	}

	return nil
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
