package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/docsign/docsign/internal/app/view"
	"github.com/docsign/docsign/internal/printer"
)

type StatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	format string
}

// NewStatusCommand returns the status command.
func NewStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *StatusCommand {
	c := &StatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("status", "Show document status and recipients.")
	c.Cmd.Arg("id", "Document ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c StatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c StatusCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.LoadConfig()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.NewRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	// Create view service.
	svc, err := view.NewService(view.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute view.
	document, err := svc.Run(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get document: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintStatus(*document); err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
