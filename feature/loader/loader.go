package loader

import (
	"context"
	"fmt"
	"strings"

	"report-reconciler/core/reconcile"
	"report-reconciler/core/storage"
	"report-reconciler/core/table"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Input roles.
const (
	RoleManual    = "manual"
	RoleAutomated = "automated"
	RoleMapping   = "mapping"
)

// InputError reports which input of a run could not be loaded.
type InputError struct {
	Role   string
	Source string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("failed to load %s input from %s: %v", e.Role, e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Inputs are the three tables a run starts from.
type Inputs struct {
	Manual    *table.Table
	Automated *table.Table
	Mapping   reconcile.ColumnMapping
}

// Loader resolves and reads the inputs of a run.
type Loader struct {
	cfg    Config
	layout Layout
	client storage.Client
	bucket string
	db     *gorm.DB
	logger *zap.Logger
}

// New creates a loader. The storage client and database are only required
// for inputs configured to come from them and may be nil otherwise.
func New(cfg Config, client storage.Client, bucket string, db *gorm.DB, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		cfg:    cfg,
		layout: NewLayout(cfg),
		client: client,
		bucket: bucket,
		db:     db,
		logger: logger,
	}
}

// Layout returns the layout the loader resolves paths with.
func (l *Loader) Layout() Layout {
	return l.layout
}

// Sources builds the sources of the manual, automated and mapping inputs.
func (l *Loader) Sources(vendor, filename string) (manual, automated, mapping Source, err error) {
	if manual, err = l.source(RoleManual, l.cfg.ManualSource, l.layout.Manual(vendor, filename), filename); err != nil {
		return nil, nil, nil, err
	}
	if automated, err = l.source(RoleAutomated, l.cfg.AutomatedSource, l.layout.Automated(vendor, filename), filename); err != nil {
		return nil, nil, nil, err
	}
	if mapping, err = l.source(RoleMapping, l.cfg.MappingSource, l.layout.Mapping(vendor), filename); err != nil {
		return nil, nil, nil, err
	}
	return manual, automated, mapping, nil
}

func (l *Loader) source(role, kind, rel, filename string) (Source, error) {
	switch strings.ToLower(kind) {
	case KindFile, "":
		return FileSource{Path: l.layout.Local(rel), Sheet: l.sheet(role)}, nil
	case KindBucket:
		if l.client == nil {
			return nil, fmt.Errorf("%s input is read from the bucket but no storage client is configured", role)
		}
		return ObjectSource{Client: l.client, Bucket: l.bucket, Key: storage.Join(rel), Sheet: l.sheet(role)}, nil
	case KindDatabase:
		if role != RoleAutomated {
			return nil, fmt.Errorf("%s input cannot be read from a database", role)
		}
		if l.db == nil {
			return nil, fmt.Errorf("%s input is read from a database but no database is connected", role)
		}
		name := l.cfg.AutomatedTable
		if name == "" {
			name = filename
		}
		return DatabaseSource{DB: l.db, Table: name}, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q for %s input", kind, role)
	}
}

// sheet returns the configured sheet for report inputs. Mappings always use their first sheet.
func (l *Loader) sheet(role string) string {
	if role == RoleMapping {
		return ""
	}
	return l.cfg.Sheet
}

// Load reads the manual report, the automated report and the column mapping.
// The first failure is returned as an *InputError.
func (l *Loader) Load(ctx context.Context, vendor, filename string) (*Inputs, error) {
	manualSrc, automatedSrc, mappingSrc, err := l.Sources(vendor, filename)
	if err != nil {
		return nil, err
	}

	manual, err := l.load(ctx, RoleManual, manualSrc)
	if err != nil {
		return nil, err
	}
	automated, err := l.load(ctx, RoleAutomated, automatedSrc)
	if err != nil {
		return nil, err
	}
	mappingTable, err := l.load(ctx, RoleMapping, mappingSrc)
	if err != nil {
		return nil, err
	}

	mapping, err := MappingFromTable(mappingTable, l.cfg.MappingSourceColumn, l.cfg.MappingTargetColumn)
	if err != nil {
		return nil, &InputError{Role: RoleMapping, Source: mappingSrc.Describe(), Err: err}
	}
	l.logger.Debug("Loaded column mapping", zap.Int("pairs", mapping.Len()))

	return &Inputs{Manual: manual, Automated: automated, Mapping: mapping}, nil
}

func (l *Loader) load(ctx context.Context, role string, src Source) (*table.Table, error) {
	t, err := src.Load(ctx)
	if err != nil {
		return nil, &InputError{Role: role, Source: src.Describe(), Err: err}
	}
	rows, cols := t.Shape()
	l.logger.Debug("Loaded input",
		zap.String("role", role),
		zap.String("source", src.Describe()),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
	)
	return t, nil
}
