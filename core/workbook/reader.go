package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"report-reconciler/core/table"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Read decodes a table from r. The format is chosen from the extension of name.
// For workbooks, sheet selects the sheet to read; empty means the first one.
func Read(r io.Reader, name, sheet string) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r, sheet)
	case ".csv":
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// ReadXLSX reads one sheet of an xlsx workbook.
func ReadXLSX(r io.Reader, sheet string) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return table.New()
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	grid := make([][]table.Cell, len(rows))
	for i, row := range rows {
		grid[i] = make([]table.Cell, len(row))
		for j, value := range row {
			cell := table.Cell{Value: value}
			if value != "" {
				if err := annotate(f, sheet, j+1, i+1, date1904, &cell); err != nil {
					return nil, err
				}
			}
			grid[i][j] = cell
		}
	}
	return table.FromCells(grid[0], grid[1:])
}

// annotate fixes up a raw cell value using the stored cell type. Numbers shown
// with a date format are turned into date text.
func annotate(f *excelize.File, sheet string, col, row int, date1904 bool, cell *table.Cell) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	typ, err := f.GetCellType(sheet, name)
	if err != nil {
		return fmt.Errorf("failed to read cell type of %s: %w", name, err)
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeDate:
		cell.Text = true
	case excelize.CellTypeBool:
		if cell.Value == "1" {
			cell.Value = "TRUE"
		} else {
			cell.Value = "FALSE"
		}
	case excelize.CellTypeError:
		cell.Value = ""
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return annotateDate(f, sheet, name, date1904, cell)
	}
	return nil
}

func annotateDate(f *excelize.File, sheet, name string, date1904 bool, cell *table.Cell) error {
	idx, err := f.GetCellStyle(sheet, name)
	if err != nil {
		return fmt.Errorf("failed to read cell style of %s: %w", name, err)
	}
	if idx == 0 {
		return nil
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return fmt.Errorf("failed to read style %d of %s: %w", idx, name, err)
	}
	if !isDateFormat(style) {
		return nil
	}

	serial, err := strconv.ParseFloat(cell.Value, 64)
	if err != nil {
		return nil
	}
	at, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return nil
	}
	cell.Value = formatDate(at)
	cell.Text = true
	return nil
}

// formatDate renders a date cell. Midnight values keep only the date.
func formatDate(at time.Time) string {
	if at.Hour() == 0 && at.Minute() == 0 && at.Second() == 0 {
		return at.Format(time.DateOnly)
	}
	return at.Format(time.DateTime)
}

// isDateFormat reports whether a style shows numbers as dates. Built-in formats
// 14-17 and 22 are dates; custom formats count when they hold a year or day
// token outside quoted and bracketed sections. Time-only formats stay numeric.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		return hasDateToken(*style.CustomNumFmt)
	}
	return (style.NumFmt >= 14 && style.NumFmt <= 17) || style.NumFmt == 22
}

func hasDateToken(format string) bool {
	quoted, bracketed := false, false
	for _, r := range strings.ToLower(format) {
		switch {
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracketed = true
		case r == ']':
			bracketed = false
		case bracketed:
		case r == 'y' || r == 'd':
			return true
		}
	}
	return false
}

// ReadCSV reads a comma separated file whose first record is the header.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return table.New()
	}

	grid := make([][]table.Cell, len(records))
	for i, rec := range records {
		grid[i] = make([]table.Cell, len(rec))
		for j, v := range rec {
			grid[i][j] = table.Cell{Value: v}
		}
	}
	return table.FromCells(grid[0], grid[1:])
}
