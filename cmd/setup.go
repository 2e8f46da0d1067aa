package cmd

import (
	"fmt"
	"strings"

	"report-reconciler/core/config"
	"report-reconciler/core/database"
	"report-reconciler/core/logger"
	"report-reconciler/core/output"
	"report-reconciler/core/storage"
	"report-reconciler/feature/loader"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// addRunFlags registers the flags shared by commands that run the pipeline.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("new-log", false, "Start a new run log instead of appending to it")
	f.Bool("ignore-rows", false, "Tolerate a different number of rows")
	f.Bool("ignore-types", false, "Tolerate columns whose types differ")
	f.String("coerce", "", "Type coercion policy: none, automated-to-manual or manual-to-automated")
	f.String("automated-source", "", "Where the automated report is read from: file, bucket or database")
	f.String("root", "", "Folder holding one folder per vendor")
	f.String("format", "", "Summary format: table, json or yaml (auto-detected when empty)")
}

// loadConfig loads the configuration and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	f := cmd.Flags()
	if f.Changed("ignore-rows") {
		cfg.Reconcile.IgnoreRowCount, _ = f.GetBool("ignore-rows")
	}
	if f.Changed("ignore-types") {
		cfg.Reconcile.IgnoreTypes, _ = f.GetBool("ignore-types")
	}
	if f.Changed("coerce") {
		cfg.Reconcile.Coercion, _ = f.GetString("coerce")
	}
	if f.Changed("automated-source") {
		cfg.Paths.AutomatedSource, _ = f.GetString("automated-source")
	}
	if f.Changed("root") {
		cfg.Paths.Root, _ = f.GetString("root")
	}
	if f.Changed("no-workbook") {
		noWorkbook, _ := f.GetBool("no-workbook")
		cfg.Report.Workbook = !noWorkbook
	}
	if f.Changed("upload") {
		cfg.Report.Upload, _ = f.GetBool("upload")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatFlag returns the output format requested on the command line.
func formatFlag(cmd *cobra.Command) (output.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(s)
	if err != nil {
		return "", err
	}
	return output.DetectFormat(string(format)), nil
}

// backends connects to the object storage and the database when the
// configuration reads from or writes to them.
func backends(cfg *config.Config, logg *zap.Logger) (storage.Client, *gorm.DB, error) {
	var client storage.Client
	needsBucket := cfg.Report.Upload
	for _, kind := range []string{cfg.Paths.ManualSource, cfg.Paths.AutomatedSource, cfg.Paths.MappingSource} {
		if strings.EqualFold(kind, loader.KindBucket) {
			needsBucket = true
		}
	}
	if needsBucket {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
		logg.Debug("Created storage client", zap.String("endpoint", cfg.Storage.Endpoint), zap.String("bucket", cfg.Storage.Bucket))
	}

	var db *gorm.DB
	if strings.EqualFold(cfg.Paths.AutomatedSource, loader.KindDatabase) {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db = conn
		logg.Debug("Connected to database", zap.String("driver", cfg.Database.Driver), zap.String("name", cfg.Database.Name))
	}
	return client, db, nil
}

// newLogger builds the logger of a command.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logg, nil
}
