package recipients

import (
	"regexp"
	"strings"
	"sync"
)

// addressPattern accepts local@domain.tld: a non-whitespace local part, a
// single @, and a domain containing at least one dot. Case is irrelevant to
// the pattern.
var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidAddress returns true when the address is well-formed. The editor never
// calls this itself, validation is owned by the panel driving it.
func ValidAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// Entry is one editable recipient draft: its text and the validity flag the
// panel computed for it.
type Entry struct {
	Text     string
	HasError bool
}

// Command mutates the editor through Dispatch. Commands addressing an index
// out of range are silent no-ops.
type Command interface {
	isCommand()
}

// SetText rewrites the text of the entry at Index.
type SetText struct {
	Index int
	Value string
}

// SetError rewrites the validity flag of the entry at Index.
type SetError struct {
	Index    int
	HasError bool
}

// Append adds a new empty, error-free entry at the end.
type Append struct{}

// RemoveAt deletes the entry at Index, shifting subsequent entries down.
type RemoveAt struct {
	Index int
}

func (SetText) isCommand()  {}
func (SetError) isCommand() {}
func (Append) isCommand()   {}
func (RemoveAt) isCommand() {}

// Editor manages an ordered, resizable list of recipient email drafts. It is
// pure state: no I/O, no validation of its own.
type Editor struct {
	mu      sync.Mutex
	entries []Entry
}

// NewEditor returns an editor holding a single empty draft.
func NewEditor() *Editor {
	return &Editor{entries: []Entry{{}}}
}

// Dispatch applies a command to the editor state.
func (e *Editor) Dispatch(cmd Command) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch c := cmd.(type) {
	case SetText:
		if c.Index < 0 || c.Index >= len(e.entries) {
			return
		}
		e.entries[c.Index].Text = c.Value

	case SetError:
		if c.Index < 0 || c.Index >= len(e.entries) {
			return
		}
		e.entries[c.Index].HasError = c.HasError

	case Append:
		e.entries = append(e.entries, Entry{})

	case RemoveAt:
		if c.Index < 0 || c.Index >= len(e.entries) {
			return
		}
		e.entries = append(e.entries[:c.Index], e.entries[c.Index+1:]...)
	}
}

// Entries returns a copy of the current drafts.
func (e *Editor) Entries() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]Entry{}, e.entries...)
}

// Len returns the number of drafts.
func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.entries)
}

// HasErrors reports whether any draft carries a validity error.
func (e *Editor) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, entry := range e.entries {
		if entry.HasError {
			return true
		}
	}
	return false
}

// Recipients returns the trimmed, non-blank draft texts in order.
func (e *Editor) Recipients() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	recipients := []string{}
	for _, entry := range e.entries {
		text := strings.TrimSpace(entry.Text)
		if text != "" {
			recipients = append(recipients, text)
		}
	}
	return recipients
}
