package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsign/docsign/internal/coordinator"
	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/recipients"
	"github.com/docsign/docsign/internal/storage"
)

// pollInterval drives the progress bar refresh while a simulation runs.
const pollInterval = 50 * time.Millisecond

// App is the terminal frontend. All document mutations go through the
// coordinator; the app only renders state and translates keys into actions.
type App struct {
	ctx    context.Context
	coord  *coordinator.Coordinator
	repo   storage.Repository
	events <-chan storage.Event
	notes  *notify.Recorder
	logger log.Logger

	documents []model.Document
	docTable  table.Model
	status    string
	width     int

	// upload modal state
	pathInput textinput.Model

	// signature request modal state
	draftInputs []textinput.Model
	draftFocus  int

	// email list modal state
	signers       []string
	signersStatus model.DocumentStatus
}

// Config is the configuration of the terminal frontend.
type Config struct {
	Coordinator *coordinator.Coordinator
	Repository  storage.Repository
	// Watcher feeds document change events into the view, optional.
	Watcher storage.Watchable
	// Notes is the notification recorder shared with the flow services.
	Notes  *notify.Recorder
	Logger log.Logger
}

// NewApp creates the terminal frontend.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Coordinator == nil {
		return nil, fmt.Errorf("coordinator is required")
	}
	if cfg.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if cfg.Notes == nil {
		cfg.Notes = notify.NewRecorder()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Noop
	}

	var events <-chan storage.Event
	if cfg.Watcher != nil {
		events, _ = cfg.Watcher.Subscribe()
	}

	docTable := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 32},
			{Title: "Status", Width: 10},
			{Title: "Signers", Width: 8},
			{Title: "Created", Width: 24},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	styles.Selected = styles.Selected.Bold(true)
	docTable.SetStyles(styles)

	pathInput := textinput.New()
	pathInput.Prompt = "File: "

	return &App{
		ctx:       ctx,
		coord:     cfg.Coordinator,
		repo:      cfg.Repository,
		events:    events,
		notes:     cfg.Notes,
		logger:    cfg.Logger.WithValues(log.Kv{"svc": "tui.App"}),
		docTable:  docTable,
		pathInput: pathInput,
	}, nil
}

type documentsMsg []model.Document
type recipientsMsg struct {
	status  model.DocumentStatus
	signers []string
}
type changeMsg struct{}
type tickMsg time.Time
type errMsg struct{ err error }

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadDocuments(), a.watchChanges(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (a *App) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		docs, err := a.repo.ListDocuments(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return documentsMsg(docs)
	}
}

func (a *App) loadRecipients(id string) tea.Cmd {
	return func() tea.Msg {
		doc, err := a.repo.GetDocument(a.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return recipientsMsg{status: doc.Status, signers: doc.Signers}
	}
}

// watchChanges blocks on the repository event stream and turns each event
// into a refresh.
func (a *App) watchChanges() tea.Cmd {
	if a.events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-a.events; !ok {
			return nil
		}
		return changeMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
	case tea.KeyMsg:
		return a.handleKey(m)
	case documentsMsg:
		a.documents = []model.Document(m)
		a.refreshTable()
	case recipientsMsg:
		a.signers = m.signers
		a.signersStatus = m.status
	case changeMsg:
		return a, tea.Batch(a.loadDocuments(), a.watchChanges())
	case tickMsg:
		if note, ok := a.notes.Last(); ok {
			a.status = note.Message
		}
		return a, tick()
	case errMsg:
		a.status = "error: " + m.err.Error()
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.coord.Modals().Descriptor().Open {
		return a.handleModalKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "u":
		a.coord.OpenUpload()
		a.pathInput.SetValue("")
		a.pathInput.Focus()
		return a, textinput.Blink
	case "s":
		doc, ok := a.selectedDocument()
		if !ok {
			return a, nil
		}
		if err := a.coord.OpenSignatureRequest(a.ctx, doc.ID); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.resetDraftInputs()
		return a, textinput.Blink
	case "v":
		doc, ok := a.selectedDocument()
		if !ok {
			return a, nil
		}
		a.signers = nil
		a.signersStatus = doc.Status
		if err := a.coord.OpenRecipients(a.ctx, doc.ID); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		return a, a.loadRecipients(doc.ID)
	case "d":
		doc, ok := a.selectedDocument()
		if !ok {
			return a, nil
		}
		a.coord.OpenDeleteConfirm(doc.ID)
		return a, nil
	}

	var cmd tea.Cmd
	a.docTable, cmd = a.docTable.Update(msg)
	return a, cmd
}

func (a *App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.coord.Modals().Descriptor().Body.Kind {
	case model.ModalKindUpload:
		return a.handleUploadKey(msg)
	case model.ModalKindSignatureRequest:
		return a.handleRequestKey(msg)
	case model.ModalKindEmailList:
		if msg.String() == "esc" || msg.String() == "enter" {
			a.coord.CloseModal()
		}
		return a, nil
	case model.ModalKindConfirmDelete:
		switch msg.String() {
		case "y":
			if err := a.coord.ConfirmDelete(); err != nil {
				a.status = "error: " + err.Error()
			}
			return a, a.loadDocuments()
		case "n", "esc":
			a.coord.CloseModal()
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	upload := a.coord.UploadService()

	switch msg.String() {
	case "esc":
		a.coord.CloseModal()
		return a, nil
	case "enter":
		path := a.pathInput.Value()
		if path == "" {
			return a, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		if err := upload.AddFiles(model.FileRef{Name: info.Name(), SizeBytes: info.Size()}); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		a.pathInput.SetValue("")
		return a, nil
	case "ctrl+r":
		upload.RemoveFile(len(upload.Files()) - 1)
		return a, nil
	case "ctrl+s":
		if err := a.coord.SubmitUpload(a.ctx); err != nil {
			a.status = "error: " + err.Error()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return a, cmd
}

func (a *App) handleRequestKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := a.coord.ActiveSession()
	if session == nil {
		a.coord.CloseModal()
		return a, nil
	}
	editor := session.Editor()
	if len(a.draftInputs) == 0 {
		a.syncDraftInputs(editor)
		if len(a.draftInputs) == 0 {
			return a, nil
		}
	}

	switch msg.String() {
	case "esc":
		a.coord.CloseModal()
		return a, nil
	case "tab", "shift+tab":
		dir := 1
		if msg.String() == "shift+tab" {
			dir = -1
		}
		a.draftInputs[a.draftFocus].Blur()
		a.draftFocus = (a.draftFocus + dir + len(a.draftInputs)) % len(a.draftInputs)
		a.draftInputs[a.draftFocus].Focus()
		return a, nil
	case "ctrl+a":
		editor.Dispatch(recipients.Append{})
		a.syncDraftInputs(editor)
		return a, nil
	case "ctrl+r":
		if editor.Len() > 1 {
			editor.Dispatch(recipients.RemoveAt{Index: a.draftFocus})
			a.syncDraftInputs(editor)
		}
		return a, nil
	case "enter":
		if err := a.coord.SubmitSignatureRequest(a.ctx); err != nil {
			a.status = "error: " + err.Error()
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.draftInputs[a.draftFocus], cmd = a.draftInputs[a.draftFocus].Update(msg)

	// Mirror the typed value into the draft and flag it like a blur
	// validation would.
	value := a.draftInputs[a.draftFocus].Value()
	editor.Dispatch(recipients.SetText{Index: a.draftFocus, Value: value})
	editor.Dispatch(recipients.SetError{
		Index:    a.draftFocus,
		HasError: value != "" && !recipients.ValidAddress(value),
	})
	return a, cmd
}

func (a *App) selectedDocument() (model.Document, bool) {
	idx := a.docTable.Cursor()
	if idx < 0 || idx >= len(a.documents) {
		return model.Document{}, false
	}
	return a.documents[idx], true
}

func (a *App) refreshTable() {
	rows := make([]table.Row, 0, len(a.documents))
	for _, d := range a.documents {
		rows = append(rows, table.Row{
			d.Name,
			string(d.Status),
			fmt.Sprintf("%d", len(d.Signers)),
			d.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		})
	}
	a.docTable.SetRows(rows)
	if a.docTable.Cursor() >= len(rows) && len(rows) > 0 {
		a.docTable.SetCursor(len(rows) - 1)
	}
}

func (a *App) resetDraftInputs() {
	a.draftInputs = nil
	a.draftFocus = 0
	if session := a.coord.ActiveSession(); session != nil {
		a.syncDraftInputs(session.Editor())
	}
}

// syncDraftInputs rebuilds the textinputs from the editor entries, keeping
// focus on a valid index.
func (a *App) syncDraftInputs(editor *recipients.Editor) {
	entries := editor.Entries()
	if len(entries) == 0 {
		a.draftInputs = nil
		a.draftFocus = 0
		return
	}
	inputs := make([]textinput.Model, 0, len(entries))
	for i, e := range entries {
		inp := textinput.New()
		inp.Prompt = fmt.Sprintf("%d. ", i+1)
		inp.SetValue(e.Text)
		inputs = append(inputs, inp)
	}
	if a.draftFocus >= len(inputs) {
		a.draftFocus = len(inputs) - 1
	}
	inputs[a.draftFocus].Focus()
	a.draftInputs = inputs
}
