package cmd

import (
	"fmt"

	"report-reconciler/core/output"
	"report-reconciler/core/storage"
	"report-reconciler/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag    bool
	bucketFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity <vendor>",
	Short: "Check the folder layout of a vendor",
	Long: `Checks that <vendor>/test_files holds the rpm_files_manual, rpm_files_automation and
output folders and the column_mapping.xlsx workbook, under the local root or in the bucket.
With --fix the missing folders are created.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vendor := args[0]

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, err := formatFlag(cmd)
		if err != nil {
			return err
		}
		logg, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := integrity.NewService(cfg.Paths, logg)
		if bucketFlag {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			svc = integrity.NewBucketService(cfg.Paths, client, cfg.Storage, logg)
		}

		report, err := svc.Check(cmd.Context(), vendor, fixFlag)
		if err != nil {
			return fmt.Errorf("integrity check failed: %w", err)
		}

		if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to print report: %w", err)
		}

		logg.Info("Integrity check completed",
			zap.String("vendor", vendor),
			zap.String("target", report.Target),
			zap.Int("created", len(report.Created)),
			zap.Int("missing_folders", len(report.MissingFolders)),
			zap.Int("missing_files", len(report.MissingFiles)),
		)
		if !report.OK() {
			return fmt.Errorf("layout of %s is incomplete", vendor)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)

	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	integrityCmd.Flags().BoolVar(&bucketFlag, "bucket", false, "Check the bucket instead of the local root")
	integrityCmd.Flags().String("root", "", "Folder holding one folder per vendor")
	integrityCmd.Flags().String("format", "", "Output format: table, json or yaml (auto-detected when empty)")
}
