package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"report-reconciler/core/database"
	"report-reconciler/core/storage"
	"report-reconciler/core/table"
	"report-reconciler/core/utils"
	"report-reconciler/core/workbook"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// ErrInputNotFound is returned when an input file, object or table does not exist.
var ErrInputNotFound = errors.New("input not found")

// Source produces one input table.
type Source interface {
	// Describe names the source for narration, e.g. a path or a bucket key.
	Describe() string
	// Load reads the table.
	Load(ctx context.Context) (*table.Table, error)
}

// FileSource reads a spreadsheet or CSV file from the local filesystem.
type FileSource struct {
	Path  string
	Sheet string
}

// Describe implements Source.
func (s FileSource) Describe() string {
	return s.Path
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*table.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, s.Path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	return workbook.Read(f, s.Path, s.Sheet)
}

// ObjectSource reads a spreadsheet or CSV object from a bucket.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Key    string
	Sheet  string
}

// Describe implements Source.
func (s ObjectSource) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

// Load implements Source.
func (s ObjectSource) Load(ctx context.Context) (*table.Table, error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.wrap(err)
	}
	defer obj.Close()

	// Objects are fetched lazily, so a missing key only shows up on read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.wrap(err)
	}
	return workbook.Read(bytes.NewReader(data), s.Key, s.Sheet)
}

func (s ObjectSource) wrap(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %s", ErrInputNotFound, s.Describe())
	}
	return fmt.Errorf("failed to get object %s: %w", s.Describe(), err)
}

// DatabaseSource reads a table written by the automation into a database.
type DatabaseSource struct {
	DB    *gorm.DB
	Table string
}

// Describe implements Source.
func (s DatabaseSource) Describe() string {
	return fmt.Sprintf("table %s (%s)", s.Table, s.DB.Dialector.Name())
}

// Load implements Source. Column types come from the schema rather than the values.
func (s DatabaseSource) Load(ctx context.Context) (*table.Table, error) {
	info, err := database.GetTableColumns(s.DB.WithContext(ctx), s.Table)
	if err != nil {
		return nil, err
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, s.Describe())
	}
	declared := make(map[string]string, len(info))
	for _, c := range info {
		declared[c.Field] = c.Type
	}

	names, rows, err := database.ReadRows(ctx, s.DB, s.Table)
	if err != nil {
		return nil, err
	}

	columns := make([]table.Column, len(names))
	for j, name := range names {
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = row[j]
		}
		col, err := columnFromSQL(name, declared[name], values)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s.%s: %w", s.Table, name, err)
		}
		columns[j] = col
	}
	return table.New(columns...)
}

// sqlType maps a declared SQL column type onto a column type.
func sqlType(declared string) table.DType {
	t := strings.ToLower(declared)
	switch {
	case t == "tinyint(1)" || strings.HasPrefix(t, "bool"):
		return table.Bool
	case strings.Contains(t, "int"):
		return table.Int64
	case strings.HasPrefix(t, "decimal"), strings.HasPrefix(t, "numeric"),
		strings.HasPrefix(t, "float"), strings.HasPrefix(t, "double"), strings.HasPrefix(t, "real"):
		return table.Float64
	default:
		return table.Object
	}
}

func columnFromSQL(name, declared string, values []any) (table.Column, error) {
	dtype := sqlType(declared)
	hasNull := false
	for _, v := range values {
		if v == nil {
			hasNull = true
			break
		}
	}
	// Integer and boolean columns cannot hold missing values.
	if hasNull && (dtype == table.Int64 || dtype == table.Bool) {
		if dtype == table.Int64 {
			dtype = table.Float64
		} else {
			dtype = table.Object
		}
	}

	out := table.Column{Name: name, Type: dtype, Values: make([]any, len(values))}
	for i, v := range values {
		if v == nil {
			continue
		}
		var ok bool
		switch dtype {
		case table.Int64:
			out.Values[i], ok = utils.ToInt64(v)
		case table.Float64:
			out.Values[i], ok = utils.ToFloat64(v)
		case table.Bool:
			out.Values[i], ok = utils.ToBool(v)
		default:
			out.Values[i], ok = utils.ToString(v), true
		}
		if !ok {
			return table.Column{}, fmt.Errorf("%w: %v as %s", table.ErrCoercion, v, dtype)
		}
	}
	return out, nil
}
