package loader

import (
	"path"
	"path/filepath"
)

// Layout resolves the location of every file of a vendor.
// Paths are relative and slash separated so they double as bucket keys.
type Layout struct {
	cfg Config
}

// NewLayout creates a layout from the configuration.
func NewLayout(cfg Config) Layout {
	return Layout{cfg: cfg}
}

// TestDir returns the folder holding all files of a vendor.
func (l Layout) TestDir(vendor string) string {
	return path.Join(vendor, l.cfg.TestDir)
}

// ManualDir returns the folder holding the manual reports.
func (l Layout) ManualDir(vendor string) string {
	return path.Join(l.TestDir(vendor), l.cfg.ManualDir)
}

// AutomatedDir returns the folder holding the automated reports.
func (l Layout) AutomatedDir(vendor string) string {
	return path.Join(l.TestDir(vendor), l.cfg.AutomatedDir)
}

// OutputDir returns the folder receiving run outputs.
func (l Layout) OutputDir(vendor string) string {
	return path.Join(l.TestDir(vendor), l.cfg.OutputDir)
}

// Manual returns the manual report of a filename.
func (l Layout) Manual(vendor, filename string) string {
	return path.Join(l.ManualDir(vendor), filename+l.cfg.ManualSuffix+l.cfg.Extension)
}

// Automated returns the automated report of a filename.
func (l Layout) Automated(vendor, filename string) string {
	return path.Join(l.AutomatedDir(vendor), filename+l.cfg.AutomatedSuffix+l.cfg.Extension)
}

// Mapping returns the column mapping workbook.
func (l Layout) Mapping(vendor string) string {
	return path.Join(l.TestDir(vendor), l.cfg.MappingFile)
}

// Output returns the output workbook of a filename.
func (l Layout) Output(vendor, filename string) string {
	return path.Join(l.OutputDir(vendor), filename+"_output.xlsx")
}

// Log returns the run log.
func (l Layout) Log(vendor string) string {
	return path.Join(l.OutputDir(vendor), l.cfg.LogFile)
}

// Folders returns the folders every vendor must have.
func (l Layout) Folders(vendor string) []string {
	return []string{l.ManualDir(vendor), l.AutomatedDir(vendor), l.OutputDir(vendor)}
}

// Local converts a layout path into a path under the local root.
func (l Layout) Local(rel string) string {
	return filepath.Join(l.cfg.Root, filepath.FromSlash(rel))
}
