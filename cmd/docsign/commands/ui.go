package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/docsign/docsign/internal/app/remove"
	"github.com/docsign/docsign/internal/app/signature"
	"github.com/docsign/docsign/internal/app/upload"
	"github.com/docsign/docsign/internal/coordinator"
	"github.com/docsign/docsign/internal/modal"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/storage"
	"github.com/docsign/docsign/internal/tui"
)

type UICommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewUICommand returns the ui command.
func NewUICommand(rootCmd *RootCommand, app *kingpin.Application) *UICommand {
	c := &UICommand{rootCmd: rootCmd}

	c.Cmd = app.Command("ui", "Open the interactive terminal interface.")

	return c
}

func (c UICommand) Name() string { return c.Cmd.FullCommand() }

func (c UICommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.LoadConfig()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.NewRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	notes := notify.NewRecorder()

	modals, err := modal.NewController(modal.ControllerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create modal controller: %w", err)
	}

	uploadSvc, err := upload.NewService(upload.ServiceConfig{
		Repository: repo,
		Notifier:   notes,
		Duration:   cfg.UploadDuration.Std(),
		MaxFiles:   cfg.MaxUploadFiles,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create upload service: %w", err)
	}

	signSvc, err := signature.NewService(signature.ServiceConfig{
		Repository:   repo,
		Notifier:     notes,
		SendDuration: cfg.SendDuration.Std(),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create signature service: %w", err)
	}

	finalizer, err := signature.NewFinalizer(signature.FinalizerConfig{
		Repository:   repo,
		Notifier:     notes,
		SignDuration: cfg.SignDuration.Std(),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create signature finalizer: %w", err)
	}

	removeSvc, err := remove.NewService(remove.ServiceConfig{
		Repository: repo,
		Notifier:   notes,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create remove service: %w", err)
	}

	coord, err := coordinator.New(coordinator.Config{
		Repository: repo,
		Modals:     modals,
		Upload:     uploadSvc,
		Signatures: signSvc,
		Finalizer:  finalizer,
		Remover:    removeSvc,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create coordinator: %w", err)
	}

	// Only some repositories can push change events.
	watcher, _ := repo.(storage.Watchable)

	app, err := tui.NewApp(ctx, tui.Config{
		Coordinator: coord,
		Repository:  repo,
		Watcher:     watcher,
		Notes:       notes,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("could not create terminal app: %w", err)
	}

	program := tea.NewProgram(app, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal app failed: %w", err)
	}

	return nil
}
