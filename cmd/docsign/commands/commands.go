package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/docsign/docsign/internal/config"
	"github.com/docsign/docsign/internal/log"
	"github.com/docsign/docsign/internal/storage"
	"github.com/docsign/docsign/internal/storage/memory"
	"github.com/docsign/docsign/internal/storage/sqlite"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string
	DBPath     string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)
	app.Flag("config", "Path to the configuration file.").Envar("DOCSIGN_CONFIG").Default(config.DefaultPath()).StringVar(&c.ConfigPath)
	app.Flag("db-path", "Path to the SQLite database file, overrides the configuration file.").Envar("DOCSIGN_DB_PATH").StringVar(&c.DBPath)

	return c
}

// LoadConfig reads the configuration file and applies the flag overrides.
func (c *RootCommand) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	if c.DBPath != "" {
		cfg.DBPath = c.DBPath
	}

	return cfg, nil
}

// NewRepository creates the document repository selected by the
// configuration: SQLite when a database path is set, in-memory otherwise.
func (c *RootCommand) NewRepository(ctx context.Context, cfg *config.Config) (storage.Repository, error) {
	if cfg.DBPath == "" {
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: c.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create memory repository: %w", err)
		}
		return repo, nil
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: cfg.DBPath,
		Logger: c.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create sqlite repository: %w", err)
	}
	return repo, nil
}

// renderProgress returns a tick observer that redraws a progress bar in
// place. The final tick ends the line.
func renderProgress(w io.Writer, label string) func(value int) {
	const width = 40
	return func(value int) {
		filled := value * width / 100
		bar := strings.Repeat("=", filled) + strings.Repeat(" ", width-filled)
		fmt.Fprintf(w, "\r%s [%s] %3d%%", label, bar, value)
		if value >= 100 {
			fmt.Fprintln(w)
		}
	}
}
