package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/docsign/docsign/internal/app/remove"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/printer"
)

type RemoveCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id    string
	force bool
}

// NewRemoveCommand returns the remove command.
func NewRemoveCommand(rootCmd *RootCommand, app *kingpin.Application) *RemoveCommand {
	c := &RemoveCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("rm", "Remove a document.")
	c.Cmd.Arg("id", "Document ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("force", "Skip the confirmation prompt.").BoolVar(&c.force)

	return c
}

func (c RemoveCommand) Name() string { return c.Cmd.FullCommand() }

func (c RemoveCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Confirm unless forced, deleting is not undoable.
	if !c.force {
		fmt.Fprintf(c.rootCmd.Stdout, "Delete document %s? [y/N]: ", c.id)
		answer, err := bufio.NewReader(c.rootCmd.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("could not read confirmation: %w", err)
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(c.rootCmd.Stdout, "Aborted.")
			return nil
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

	// Create remove service.
	svc, err := remove.NewService(remove.ServiceConfig{
		Repository: repo,
		Notifier:   notify.NewLogger(logger),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Execute remove.
	if err := svc.Run(ctx, c.id); err != nil {
		return fmt.Errorf("could not remove document: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintMessage(fmt.Sprintf("Removed document: %s", c.id)); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}
