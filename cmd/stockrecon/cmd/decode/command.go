// Package decode implements the decode command, which turns OCR text of
// scanned issue documents into issue document records.
package decode

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/stockrecon"
	"github.com/agentstation/stockrecon/internal/appcontext"
	"github.com/agentstation/stockrecon/internal/cmd/alerts"
	"github.com/agentstation/stockrecon/internal/cmd/output"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/extract"
	"github.com/agentstation/stockrecon/pkg/logging"
)

// AppContext defines the interface that the decode command needs from the app.
type AppContext interface {
	CheckerWithOptions(...stockrecon.Option) (stockrecon.Checker, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	Settings() appcontext.Settings
	Stdout() io.Writer
	Stderr() io.Writer
}

// Options holds the decode command flags.
type Options struct {
	OutDir  string
	TextDir string
	Report  bool
	Workers int
}

// NewCommand creates the decode command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "decode [FILES...]",
		GroupID: "core",
		Short:   "Decode OCR text of issue documents (RW) into records",
		Long: `Decode reads the OCR text of scanned issue documents, recognizes the
document number, disposition and dispatch references and item lines, and
saves one JSON record per document into the issue folder.

Without arguments every .txt file of the text folder is decoded. Arguments
may be file names or shell patterns.`,
		Example: `  stockrecon decode                       # Decode RW_txt/*.txt into RW_json
  stockrecon decode --report              # Also print the processing report
  stockrecon decode -r RW_txt/Scan_0001.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), app, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out", "", "folder for decoded records (default from config, RW_json)")
	cmd.Flags().StringVar(&opts.TextDir, "text-dir", "", "folder scanned when no files are given (default from config, RW_txt)")
	cmd.Flags().BoolVarP(&opts.Report, "report", "r", false, "print the processing report")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "files decoded concurrently (default from config)")

	return cmd
}

// Run decodes the given files, or the text folder when none are given.
func Run(ctx context.Context, app AppContext, opts *Options, args []string) error {
	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.WrapValidation("format", err)
	}
	format = output.DetectFormat(string(format))

	settings := app.Settings()
	outDir := opts.OutDir
	if outDir == "" {
		outDir = settings.IssueDir
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = settings.Workers
	}

	paths, err := inputPaths(ctx, opts, settings, args)
	if err != nil {
		return err
	}

	writer := alerts.NewFormatWriter(app.Stderr(), format)
	if len(paths) == 0 {
		return writer.WriteAlert(alerts.NewWarning("No text files to decode"))
	}

	checkerOpts := []stockrecon.Option{stockrecon.WithIssueDir(outDir)}
	if workers > 0 {
		checkerOpts = append(checkerOpts, stockrecon.WithWorkers(workers))
	}
	checker, err := app.CheckerWithOptions(checkerOpts...)
	if err != nil {
		return err
	}

	vs, err := checker.Decode(ctx, paths)
	if err != nil {
		return err
	}

	if opts.Report {
		if err := output.NewFormatter(format).Format(app.Stdout(), vs); err != nil {
			return errors.WrapIO("write", "stdout", err)
		}
	}

	incomplete := 0
	for _, v := range vs {
		if !v.Complete() {
			incomplete++
		}
	}
	logger.Info().
		Int("files", len(vs)).
		Int("incomplete", incomplete).
		Str("out", outDir).
		Msg("Decoding complete")

	alert := alerts.NewSuccess(fmt.Sprintf("Decoded %d issue document(s) into %s", len(vs), outDir))
	if incomplete > 0 {
		alert = alerts.NewWarning(fmt.Sprintf("Decoded %d issue document(s) into %s, %d incomplete", len(vs), outDir, incomplete))
	}
	return writer.WriteAlert(alert)
}

func inputPaths(ctx context.Context, opts *Options, settings appcontext.Settings, args []string) ([]string, error) {
	if len(args) > 0 {
		return extract.ExpandPaths(ctx, args)
	}
	dir := opts.TextDir
	if dir == "" {
		dir = settings.TextDir
	}
	return extract.TextFiles(dir)
}
