package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/docsign/docsign/internal/app/remove"
	"github.com/docsign/docsign/internal/app/signature"
	"github.com/docsign/docsign/internal/app/upload"
	"github.com/docsign/docsign/internal/coordinator"
	"github.com/docsign/docsign/internal/modal"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/printer"
	"github.com/docsign/docsign/internal/recipients"
)

type RequestCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id     string
	emails []string
}

// NewRequestCommand returns the request command.
func NewRequestCommand(rootCmd *RootCommand, app *kingpin.Application) *RequestCommand {
	c := &RequestCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("request", "Send a signature request and run the signing process.")
	c.Cmd.Arg("id", "Document ID.").Required().StringVar(&c.id)
	c.Cmd.Flag("to", "Recipient email, repeatable.").Required().StringsVar(&c.emails)

	return c
}

func (c RequestCommand) Name() string { return c.Cmd.FullCommand() }

// Run drives the whole signature lifecycle for one document: the request
// panel is opened, the recipients drafted, the send run executed and, on its
// confirmation, the signing run chained until the document is signed.
func (c RequestCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.LoadConfig()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.NewRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	notifier := notify.NewLogger(logger)

	modals, err := modal.NewController(modal.ControllerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create modal controller: %w", err)
	}

	uploadSvc, err := upload.NewService(upload.ServiceConfig{
		Repository: repo,
		Notifier:   notifier,
		Duration:   cfg.UploadDuration.Std(),
		MaxFiles:   cfg.MaxUploadFiles,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create upload service: %w", err)
	}

	signSvc, err := signature.NewService(signature.ServiceConfig{
		Repository:   repo,
		Notifier:     notifier,
		SendDuration: cfg.SendDuration.Std(),
		OnTick:       renderProgress(c.rootCmd.Stderr, "Sending"),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create signature service: %w", err)
	}

	finalizer, err := signature.NewFinalizer(signature.FinalizerConfig{
		Repository:   repo,
		Notifier:     notifier,
		SignDuration: cfg.SignDuration.Std(),
		OnTick:       renderProgress(c.rootCmd.Stderr, "Signing"),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("could not create signature finalizer: %w", err)
	}

	removeSvc, err := remove.NewService(remove.ServiceConfig{
		Repository: repo,
		Notifier:   notifier,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create remove service: %w", err)
	}

	signedC := make(chan string, 1)
	coord, err := coordinator.New(coordinator.Config{
		Repository: repo,
		Modals:     modals,
		Upload:     uploadSvc,
		Signatures: signSvc,
		Finalizer:  finalizer,
		Remover:    removeSvc,
		OnSigned:   func(id string) { signedC <- id },
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create coordinator: %w", err)
	}

	// Draft the recipients the way the request panel would.
	if err := coord.OpenSignatureRequest(ctx, c.id); err != nil {
		return fmt.Errorf("could not open signature request: %w", err)
	}
	editor := coord.ActiveSession().Editor()
	for i, email := range c.emails {
		if i > 0 {
			editor.Dispatch(recipients.Append{})
		}
		editor.Dispatch(recipients.SetText{Index: i, Value: email})
		editor.Dispatch(recipients.SetError{Index: i, HasError: !recipients.ValidAddress(email)})
	}

	if err := coord.SubmitSignatureRequest(ctx); err != nil {
		return fmt.Errorf("could not submit signature request: %w", err)
	}

	// Wait for the chained send and signing runs.
	select {
	case <-signedC:
	case <-ctx.Done():
		coord.CloseModal()
		finalizer.Cancel()
		return ctx.Err()
	}

	document, err := repo.GetDocument(ctx, c.id)
	if err != nil {
		return fmt.Errorf("could not get document: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintStatus(*document); err != nil {
		return fmt.Errorf("could not print status: %w", err)
	}

	return nil
}
