package notify

import (
	"sync"

	"github.com/docsign/docsign/internal/log"
)

// Level is the severity of a user-facing notification.
type Level string

const (
	// LevelSuccess notifies a completed action.
	LevelSuccess Level = "success"
	// LevelError notifies a failed or rejected action.
	LevelError Level = "error"
	// LevelInfo notifies an informational event.
	LevelInfo Level = "info"
)

// Notifier is the fire-and-forget sink for user-facing notifications. The
// engine never waits on an acknowledgment.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// Noop discards every notification.
const Noop = noop(0)

type noop int

var _ Notifier = Noop

func (noop) Success(message string) {}
func (noop) Error(message string)   {}
func (noop) Info(message string)    {}

type loggerNotifier struct {
	logger log.Logger
}

// NewLogger returns a Notifier that writes notifications to a logger, used by
// the one-shot CLI commands.
func NewLogger(logger log.Logger) Notifier {
	if logger == nil {
		logger = log.Noop
	}
	return loggerNotifier{logger: logger.WithValues(log.Kv{"svc": "notify.Logger"})}
}

func (l loggerNotifier) Success(message string) { l.logger.Infof("%s", message) }
func (l loggerNotifier) Error(message string)   { l.logger.Errorf("%s", message) }
func (l loggerNotifier) Info(message string)    { l.logger.Infof("%s", message) }

// Notification is one recorded notification.
type Notification struct {
	Level   Level
	Message string
}

// Recorder keeps notifications in memory. The TUI status line consumes the
// last one, tests assert on the full sequence.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates a new notification recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) { r.add(LevelSuccess, message) }
func (r *Recorder) Error(message string)   { r.add(LevelError, message) }
func (r *Recorder) Info(message string)    { r.add(LevelInfo, message) }

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notifications = append(r.notifications, Notification{Level: level, Message: message})
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.notifications) == 0 {
		return Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

// All returns a copy of every recorded notification in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Notification{}, r.notifications...)
}
