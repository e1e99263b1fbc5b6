package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/docsign/docsign/internal/app/upload"
	"github.com/docsign/docsign/internal/model"
	"github.com/docsign/docsign/internal/notify"
	"github.com/docsign/docsign/internal/printer"
)

type UploadCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	paths []string
}

// NewUploadCommand returns the upload command.
func NewUploadCommand(rootCmd *RootCommand, app *kingpin.Application) *UploadCommand {
	c := &UploadCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("upload", "Upload documents.")
	c.Cmd.Arg("files", "Files to upload.").Required().ExistingFilesVar(&c.paths)

	return c
}

func (c UploadCommand) Name() string { return c.Cmd.FullCommand() }

func (c UploadCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg, err := c.rootCmd.LoadConfig()
	if err != nil {
		return err
	}

	repo, err := c.rootCmd.NewRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	// Create upload service.
	svc, err := upload.NewService(upload.ServiceConfig{
		Repository: repo,
		Notifier:   notify.NewLogger(logger),
		Duration:   cfg.UploadDuration.Std(),
		MaxFiles:   cfg.MaxUploadFiles,
		OnTick:     renderProgress(c.rootCmd.Stderr, "Uploading"),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// Collect the files.
	files := make([]model.FileRef, 0, len(c.paths))
	for _, path := range c.paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("could not stat %q: %w", path, err)
		}
		files = append(files, model.FileRef{Name: info.Name(), SizeBytes: info.Size()})
	}
	if err := svc.AddFiles(files...); err != nil {
		return fmt.Errorf("could not add files: %w", err)
	}

	// Execute the upload run and wait for the commit.
	doneC := make(chan []model.Document, 1)
	if err := svc.Submit(ctx, func(created []model.Document) { doneC <- created }); err != nil {
		return fmt.Errorf("could not submit upload: %w", err)
	}

	var created []model.Document
	select {
	case created = <-doneC:
	case <-ctx.Done():
		svc.Cancel()
		return ctx.Err()
	}

	// Print the new documents.
	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintList(created); err != nil {
		return fmt.Errorf("could not print list: %w", err)
	}

	return nil
}
