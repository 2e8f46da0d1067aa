package integrity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"report-reconciler/core/output"
	"report-reconciler/core/storage"
	"report-reconciler/feature/integrity/checks"
	"report-reconciler/feature/loader"

	"go.uber.org/zap"
)

// Report is the result of an integrity check of one vendor.
type Report struct {
	Vendor         string   `json:"vendor" yaml:"vendor"`
	Target         string   `json:"target" yaml:"target"`
	MissingFolders []string `json:"missing_folders" yaml:"missing_folders"`
	MissingFiles   []string `json:"missing_files" yaml:"missing_files"`
	Created        []string `json:"created,omitempty" yaml:"created,omitempty"`
}

// OK reports whether nothing is missing anymore.
func (r *Report) OK() bool {
	return len(r.MissingFolders) == 0 && len(r.MissingFiles) == 0
}

// TableData implements output.Tabular.
func (r *Report) TableData() output.Data {
	data := output.Data{Headers: []string{"Path", "Kind", "Status"}}
	for _, f := range r.Created {
		data.Rows = append(data.Rows, []string{f, "folder", "created"})
	}
	for _, f := range r.MissingFolders {
		data.Rows = append(data.Rows, []string{f, "folder", "missing"})
	}
	for _, f := range r.MissingFiles {
		data.Rows = append(data.Rows, []string{f, "file", "missing"})
	}
	if len(data.Rows) == 0 {
		data.Rows = append(data.Rows, []string{r.Target, "layout", "ok"})
	}
	return data
}

// Service handles integrity checks of the vendor layout, either under the
// local root or in the bucket.
type Service struct {
	layout loader.Layout
	root   string
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewService creates a service checking the local root.
func NewService(cfg loader.Config, logger *zap.Logger) *Service {
	return &Service{layout: loader.NewLayout(cfg), root: cfg.Root, logger: logger}
}

// NewBucketService creates a service checking the bucket.
func NewBucketService(cfg loader.Config, client storage.Client, storageCfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		layout: loader.NewLayout(cfg),
		client: client,
		bucket: storageCfg.Bucket,
		region: storageCfg.Region,
		logger: logger,
	}
}

// Target names where the layout is checked.
func (s *Service) Target() string {
	if s.client != nil {
		return "s3://" + s.bucket
	}
	return s.root
}

// CheckStructure returns the folders missing for a vendor.
func (s *Service) CheckStructure(ctx context.Context, vendor string) ([]string, error) {
	folders := s.layout.Folders(vendor)
	if s.client != nil {
		return checks.CheckStructure(ctx, s.client, s.bucket, folders)
	}
	return checks.CheckLocalStructure(s.root, folders)
}

// CheckMapping returns the mapping file when it is missing for a vendor.
func (s *Service) CheckMapping(ctx context.Context, vendor string) ([]string, error) {
	files := []string{s.layout.Mapping(vendor)}
	if s.client != nil {
		return checks.CheckFiles(ctx, s.client, s.bucket, files)
	}
	return checks.CheckLocalFiles(s.root, files)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client != nil {
		if err := checks.EnsureBucket(ctx, s.client, s.bucket, s.region, s.logger); err != nil {
			return err
		}
		return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
	}
	return checks.FixLocalStructure(s.root, s.logger, missing)
}

// Check runs every check for a vendor. With fix, missing folders (and a
// missing bucket) are created; missing files are only reported.
func (s *Service) Check(ctx context.Context, vendor string, fix bool) (*Report, error) {
	if strings.TrimSpace(vendor) == "" {
		return nil, errors.New("vendor is required")
	}
	report := &Report{Vendor: vendor, Target: s.Target()}

	missing, err := s.CheckStructure(ctx, vendor)
	if errors.Is(err, checks.ErrBucketNotFound) && fix {
		missing, err = s.layout.Folders(vendor), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check structure: %w", err)
	}

	if fix && len(missing) > 0 {
		if err := s.FixStructure(ctx, missing); err != nil {
			return nil, err
		}
		report.Created = missing
		missing = nil
	}
	report.MissingFolders = missing

	files, err := s.CheckMapping(ctx, vendor)
	if err != nil {
		return nil, fmt.Errorf("failed to check mapping: %w", err)
	}
	report.MissingFiles = files

	s.logger.Debug("Checked vendor layout",
		zap.String("vendor", vendor),
		zap.String("target", report.Target),
		zap.Strings("missing_folders", report.MissingFolders),
		zap.Strings("missing_files", report.MissingFiles),
	)
	return report, nil
}
