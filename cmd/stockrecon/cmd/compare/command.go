// Package compare implements the compare command, which reconciles issue
// documents against dispatch documents and prints the report.
package compare

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
	"github.com/agentstation/stockrecon/internal/cmd/table"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/logging"
	"github.com/agentstation/stockrecon/pkg/reconcile"
)

// AppContext defines the interface that the compare command needs from the app.
type AppContext interface {
	CheckerWithOptions(...stockrecon.Option) (stockrecon.Checker, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	Settings() appcontext.Settings
	Stdout() io.Writer
	Stderr() io.Writer
}

// Options holds the compare command flags.
type Options struct {
	IssueDir          string
	DispatchDir       string
	FailOnDiscrepancy bool
	OnlyDiscrepancies bool
	Summary           bool
}

// NewCommand creates the compare command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "compare",
		GroupID: "core",
		Short:   "Compare issue documents (RW) against dispatch documents (WZ)",
		Long: `Compare loads every issue and dispatch record, groups documents linked by
dispatch references into clusters and compares the summed item quantities
of each cluster.

Every item index of a cluster is reported as MATCH or DISCREPANCY. Dispatch
references without a record are reported as "(not found)".`,
		Example: `  stockrecon compare                                  # Compare RW_json against WZ_json
  stockrecon compare --issues in/RW --dispatches in/WZ
  stockrecon compare --only-discrepancies -o table
  stockrecon compare --fail-on-discrepancy -o json    # Exit code 2 on discrepancies`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("fail-on-discrepancy") {
				opts.FailOnDiscrepancy = app.Settings().FailOnDiscrepancy
			}
			return Run(cmd.Context(), app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.IssueDir, "issues", "", "folder with issue document records (default from config, RW_json)")
	cmd.Flags().StringVar(&opts.DispatchDir, "dispatches", "", "folder with dispatch document records (default from config, WZ_json)")
	cmd.Flags().BoolVar(&opts.FailOnDiscrepancy, "fail-on-discrepancy", false, "exit with code 2 when any discrepancy is found")
	cmd.Flags().BoolVar(&opts.OnlyDiscrepancies, "only-discrepancies", false, "print only clusters containing a discrepancy")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "print only the run summary")

	return cmd
}

// Run executes a comparison and writes the report to the app's stdout.
func Run(ctx context.Context, app AppContext, opts *Options) error {
	logger := app.Logger()
	ctx = logging.WithLogger(ctx, logger)

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.WrapValidation("format", err)
	}
	format = output.DetectFormat(string(format))

	settings := app.Settings()
	issueDir := firstNonEmpty(opts.IssueDir, settings.IssueDir)
	dispatchDir := firstNonEmpty(opts.DispatchDir, settings.DispatchDir)

	checker, err := app.CheckerWithOptions(
		stockrecon.WithIssueDir(issueDir),
		stockrecon.WithDispatchDir(dispatchDir),
	)
	if err != nil {
		return err
	}

	report, err := checker.Reconcile(ctx)
	if err != nil {
		return err
	}

	view := report
	if opts.OnlyDiscrepancies {
		view = report.OnlyDiscrepancies()
	}

	var data any = view
	if opts.Summary {
		data = summaryData(view.Summary, format)
	}
	if err := output.NewFormatter(format).Format(app.Stdout(), data); err != nil {
		return errors.WrapIO("write", "stdout", err)
	}

	summary := report.Summary
	logger.Info().
		Str("issues", issueDir).
		Str("dispatches", dispatchDir).
		Int("clusters", summary.Clusters).
		Int("discrepant_clusters", summary.DiscrepantClusters).
		Int("discrepant_items", summary.DiscrepancyRows).
		Msg("Comparison complete")

	if err := alerts.NewFormatWriter(app.Stderr(), format).WriteAlert(summaryAlert(summary)); err != nil {
		logger.Debug().Err(err).Msg("Failed to write summary alert")
	}

	if opts.FailOnDiscrepancy && summary.DiscrepancyRows > 0 {
		return errors.NewDiscrepancyError(summary.DiscrepantClusters, summary.DiscrepancyRows)
	}
	return nil
}

func summaryData(s reconcile.Summary, format output.Format) any {
	switch format {
	case output.FormatJSON, output.FormatYAML:
		return s
	default:
		return table.SummaryToTableData(s)
	}
}

func summaryAlert(s reconcile.Summary) *alerts.Alert {
	var alert *alerts.Alert
	if s.DiscrepancyRows == 0 {
		alert = alerts.NewSuccess(fmt.Sprintf("All %d cluster(s) match", s.Clusters))
	} else {
		alert = alerts.NewWarning(fmt.Sprintf("%d discrepant item(s) in %d of %d cluster(s)",
			s.DiscrepancyRows, s.DiscrepantClusters, s.Clusters))
	}
	if len(s.UnresolvedDispatchIDs) > 0 {
		alert.WithDetails("dispatch documents not found: " + table.JoinIDs(s.UnresolvedDispatchIDs))
	}
	return alert
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
