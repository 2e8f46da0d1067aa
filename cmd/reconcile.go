package cmd

import (
	"errors"
	"fmt"
	"time"

	"report-reconciler/core/logger"
	"report-reconciler/core/outcome"
	"report-reconciler/core/output"
	"report-reconciler/core/reconcile"
	"report-reconciler/feature/loader"
	"report-reconciler/feature/report"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd runs the whole pipeline for one report.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <vendor> <filename>",
	Short: "Compare a manual report with its automated counterpart",
	Long: `Loads <vendor>/test_files/rpm_files_manual/<filename>m.xlsx, the automated report
<vendor>/test_files/rpm_files_automation/<filename>a.xlsx and the column mapping, then
validates, aligns and compares them.

Every finding is appended to <vendor>/test_files/output/test_results.txt and, once the
tables were aligned, the sorted tables are written to <filename>_output.xlsx with the
differing cells highlighted. The command exits with status 1 when the outcome is fatal.

Examples:
  # Compare the March report of Sandler
  reconcile Sandler mar-24

  # Tolerate extra rows and convert mismatched automated columns to the manual types
  reconcile Sandler mar-24 --ignore-rows --coerce automated-to-manual

  # Read the automated report from the database and print the summary as JSON
  reconcile Sandler mar-24 --automated-source database --format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args[0], args[1], false)
	},
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
	addRunFlags(reconcileCmd)
	reconcileCmd.Flags().Bool("no-workbook", false, "Do not write the output workbook")
	reconcileCmd.Flags().Bool("upload", false, "Upload the run log and the workbook to the bucket")
}

// runPipeline loads the inputs of one report, runs the engine and writes the outputs.
// With validateOnly the run stops after validation and writes no workbook.
func runPipeline(cmd *cobra.Command, vendor, filename string, validateOnly bool) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Reconcile.Options()
	if err != nil {
		return err
	}
	messages, err := cfg.Messages()
	if err != nil {
		return err
	}

	logg, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logg.Sync()

	run := report.Run{ID: uuid.NewString(), Vendor: vendor, Filename: filename, Started: time.Now()}
	logg = logger.WithRun(logg, run.ID, vendor, filename)

	client, db, err := backends(cfg, logg)
	if err != nil {
		return err
	}

	ld := loader.New(cfg.Paths, client, cfg.Storage.Bucket, db, logg)
	layout := ld.Layout()

	newLog, _ := cmd.Flags().GetBool("new-log")
	logPath := layout.Local(layout.Log(vendor))
	journal, err := report.OpenJournal(logPath, newLog)
	if err != nil {
		return err
	}
	defer journal.Close()
	journal.SetMessages(messages)
	journal.SetTimeFormat(cfg.Report.TimeFormat)
	if cfg.Report.Echo {
		journal.SetConsole(cmd.ErrOrStderr())
	}
	if err := journal.Begin(run); err != nil {
		return err
	}

	logg.Info("Starting run", zap.Bool("validate_only", validateOnly))

	var res *reconcile.Result
	inputs, err := ld.Load(ctx, vendor, filename)
	if err != nil {
		var inputErr *loader.InputError
		if !errors.As(err, &inputErr) {
			return err
		}
		logg.Error("Failed to load input", zap.String("role", inputErr.Role), zap.Error(err))
		if err := journal.Abort(err); err != nil {
			return err
		}
	} else {
		engine := reconcile.NewEngine(opts, logg)
		if validateOnly {
			res = engine.Validate(inputs.Manual, inputs.Automated)
		} else {
			res = engine.Run(inputs.Manual, inputs.Automated, inputs.Mapping)
		}
		if err := journal.Narrate(res); err != nil {
			return err
		}
	}

	summary := report.Summarize(run, res, messages)
	summary.Log = logPath

	if !validateOnly && cfg.Report.Workbook && res != nil && res.Aligned {
		path := layout.Local(layout.Output(vendor, filename))
		if err := report.WriteWorkbook(path, res, report.WorkbookOptions{Differences: cfg.Report.Differences}); err != nil {
			return fmt.Errorf("failed to write output workbook: %w", err)
		}
		summary.Workbook = path
		logg.Info("Wrote output workbook", zap.String("path", path))
	}

	if err := journal.Close(); err != nil {
		return fmt.Errorf("failed to close run log: %w", err)
	}

	if cfg.Report.Upload {
		if err := report.Upload(ctx, client, cfg.Storage.Bucket, layout.Log(vendor), logPath); err != nil {
			return err
		}
		if summary.Workbook != "" {
			if err := report.Upload(ctx, client, cfg.Storage.Bucket, layout.Output(vendor, filename), summary.Workbook); err != nil {
				return err
			}
		}
		logg.Info("Uploaded outputs", zap.String("bucket", cfg.Storage.Bucket))
	}

	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), summary); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	logg.Info("Run finished", zap.String("outcome", summary.Outcome), zap.Int("differences", summary.Differences))
	if summary.Severity == string(outcome.Fatal) {
		return fmt.Errorf("run %s finished with outcome %s", run.ID, summary.Outcome)
	}
	return nil
}
