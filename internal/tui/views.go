package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/printer"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	modalStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Documents"))
	b.WriteString("\n\n")
	b.WriteString(a.docTable.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("u: upload  s: request signature  v: recipients  d: delete  q: quit"))

	if state := a.coord.FinalizerProgress(); state.Running {
		b.WriteString("\n\nCollecting signatures\n")
		b.WriteString(renderProgressBar(state))
	}

	if desc := a.coord.Modals().Descriptor(); desc.Open {
		b.WriteString("\n\n")
		b.WriteString(a.renderModal(desc))
	}

	if a.status != "" {
		b.WriteString("\n\n")
		b.WriteString(statusStyle.Render(a.status))
	}

	return b.String()
}

func (a *App) renderModal(desc model.ModalDescriptor) string {
	var body string
	switch desc.Body.Kind {
	case model.ModalKindUpload:
		body = a.renderUpload()
	case model.ModalKindSignatureRequest:
		body = a.renderRequest()
	case model.ModalKindEmailList:
		body = a.renderRecipients()
	case model.ModalKindConfirmDelete:
		body = "Delete this document?\n\n" + helpStyle.Render("y: delete  n: keep")
	}

	return modalStyle.Render(titleStyle.Render(desc.Title) + "\n\n" + body)
}

func (a *App) renderUpload() string {
	upload := a.coord.UploadService()
	var b strings.Builder

	files := upload.Files()
	if len(files) == 0 {
		b.WriteString("No files selected.\n")
	}
	for _, f := range files {
		b.WriteString(fmt.Sprintf("  %s (%s)\n", f.Name, printer.FormatBytes(f.SizeBytes)))
	}
	b.WriteString("\n")

	if state := upload.Progress(); state.Running {
		b.WriteString(renderProgressBar(state))
		b.WriteString("\n")
	} else {
		b.WriteString(a.pathInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: add file  ctrl+r: remove last  ctrl+s: upload  esc: cancel"))
	return b.String()
}

func (a *App) renderRequest() string {
	session := a.coord.ActiveSession()
	if session == nil {
		return ""
	}

	var b strings.Builder
	entries := session.Editor().Entries()
	for i, entry := range entries {
		line := entry.Text
		if i < len(a.draftInputs) {
			line = a.draftInputs[i].View()
		}
		b.WriteString(line)
		if entry.HasError {
			b.WriteString("  " + errorStyle.Render("invalid email"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if state := session.Progress(); state.Running {
		b.WriteString(renderProgressBar(state))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("enter: send  ctrl+a: add recipient  ctrl+r: remove  tab: next  esc: cancel"))
	return b.String()
}

func (a *App) renderRecipients() string {
	var b strings.Builder

	b.WriteString("Status: " + statusStyle.Render(string(a.signersStatus)) + "\n\n")
	if len(a.signers) == 0 {
		b.WriteString("No recipients yet.\n")
	}
	for _, s := range a.signers {
		b.WriteString("  " + s + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc: close"))
	return b.String()
}

// renderProgressBar draws a fixed-width bar for a 0..100 progress value.
func renderProgressBar(state model.ProgressState) string {
	const width = 40
	filled := state.Value * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, state.Value)
}
