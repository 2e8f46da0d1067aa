package loader

// Source kinds an input can be read from.
const (
	KindFile     = "file"
	KindBucket   = "bucket"
	KindDatabase = "database"
)

// Config describes where the inputs and outputs of a run live.
type Config struct {
	// Root is the local directory holding one folder per vendor.
	Root string `mapstructure:"root" default:"."`
	// TestDir is the per-vendor folder holding inputs and outputs.
	TestDir string `mapstructure:"test_dir" default:"test_files"`
	// ManualDir holds the manual reports, inside TestDir.
	ManualDir string `mapstructure:"manual_dir" default:"rpm_files_manual"`
	// AutomatedDir holds the automated reports, inside TestDir.
	AutomatedDir string `mapstructure:"automated_dir" default:"rpm_files_automation"`
	// OutputDir receives the run log and output workbooks, inside TestDir.
	OutputDir string `mapstructure:"output_dir" default:"output"`
	// MappingFile is the column mapping workbook, inside TestDir.
	MappingFile string `mapstructure:"mapping_file" default:"column_mapping.xlsx"`
	// LogFile is the run log, inside OutputDir.
	LogFile string `mapstructure:"log_file" default:"test_results.txt"`
	// ManualSuffix is appended to the filename of manual reports.
	ManualSuffix string `mapstructure:"manual_suffix" default:"m"`
	// AutomatedSuffix is appended to the filename of automated reports.
	AutomatedSuffix string `mapstructure:"automated_suffix" default:"a"`
	// Extension selects the report format (.xlsx or .csv).
	Extension string `mapstructure:"extension" default:".xlsx"`
	// Sheet is the worksheet to read; empty reads the first one.
	Sheet string `mapstructure:"sheet" default:""`
	// MappingSourceColumn names the mapping column holding report column names.
	MappingSourceColumn string `mapstructure:"mapping_source_column" default:"file_column"`
	// MappingTargetColumn names the mapping column holding canonical column names.
	MappingTargetColumn string `mapstructure:"mapping_target_column" default:"rpm_column"`
	// ManualSource is where manual reports are read from (file, bucket).
	ManualSource string `mapstructure:"manual_source" default:"file"`
	// AutomatedSource is where automated reports are read from (file, bucket, database).
	AutomatedSource string `mapstructure:"automated_source" default:"file"`
	// MappingSource is where the column mapping is read from (file, bucket).
	MappingSource string `mapstructure:"mapping_source" default:"file"`
	// AutomatedTable is the table holding the automated report; empty uses the filename.
	AutomatedTable string `mapstructure:"automated_table" default:""`
}
