package config

import (
	"os"
	"path/filepath"
	"testing"

	"report-reconciler/core/outcome"
	"report-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Reconcile.Options()
	require.NoError(t, err)
	assert.Equal(t, reconcile.DefaultOptions(), opts)

	assert.Equal(t, "test_files", cfg.Paths.TestDir)
	assert.Equal(t, "column_mapping.xlsx", cfg.Paths.MappingFile)
	assert.True(t, cfg.Report.Echo)
	assert.True(t, cfg.Report.Workbook)
	assert.False(t, cfg.Report.Upload)
	assert.Equal(t, "reports", cfg.Storage.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("RECONCILE_TOLERANCE", "0.5")
	t.Setenv("RECONCILE_SORT_KEYS", "Account,Gross commission")
	t.Setenv("RECONCILE_IGNORE_TYPES", "true")
	t.Setenv("PATHS_AUTOMATED_SOURCE", "database")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Reconcile.Tolerance)
	assert.Equal(t, []string{"Account", "Gross commission"}, cfg.Reconcile.SortKeys)
	assert.True(t, cfg.Reconcile.IgnoreTypes)
	assert.Equal(t, "database", cfg.Paths.AutomatedSource)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	content := `
reconcile:
  coercion: automated-to-manual
  coerce_columns:
    Units: none
  noise_columns: [id]
report:
  messages:
    identical: Reports match.
paths:
  root: /data
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.Reconcile.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, opts.NoiseColumns)
	assert.Equal(t, reconcile.CoerceAutomatedToManual, opts.Coercion.For("Account"))
	assert.Equal(t, reconcile.CoerceNone, opts.Coercion.For("Units"))

	messages, err := cfg.Messages()
	require.NoError(t, err)
	assert.Equal(t, "Reports match.", messages.Text(outcome.Identical))
	assert.Equal(t, "/data", cfg.Paths.Root)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("reconcile: [\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"Negative tolerance", func(c *Config) { c.Reconcile.Tolerance = -0.1 }, "invalid reconcile config"},
		{"Unknown coercion", func(c *Config) { c.Reconcile.Coercion = "sideways" }, "unknown coercion policy"},
		{"Unknown outcome message", func(c *Config) { c.Report.Messages = map[string]string{"perfect": "x"} }, "unknown outcome"},
		{"Unknown source", func(c *Config) { c.Paths.ManualSource = "ftp" }, "unknown manual_source"},
		{"Mapping from database", func(c *Config) { c.Paths.MappingSource = "database" }, "mapping_source cannot be"},
		{"Unsupported extension", func(c *Config) { c.Paths.Extension = ".ods" }, "unsupported extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(t.TempDir())
			require.NoError(t, err)
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
