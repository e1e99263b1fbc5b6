package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/docsign/docsign/internal/app/list"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/printer"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	statusFilter string
	format       string
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List all documents.")
	c.Cmd.Flag("status", "Filter by status (pending, sent, signed, rejected).").StringVar(&c.statusFilter)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

func (c ListCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Parse status filter if provided.
	var statusFilter model.DocumentStatus
	if c.statusFilter != "" {
		statusFilter = model.DocumentStatus(strings.ToLower(c.statusFilter))
		if !statusFilter.IsValid() {
			return fmt.Errorf("invalid status filter: %s (must be: pending, sent, signed, rejected)", c.statusFilter)
		}
	}

	cfg, err := c.rootCmd.LoadConfig()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.NewRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	// Create list service.
	svc, err := list.NewService(list.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute list.
	documents, err := svc.Run(ctx, list.Request{StatusFilter: statusFilter})
	if err != nil {
		return fmt.Errorf("could not list documents: %w", err)
	}

	// Print output.
	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintList(documents); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
