package workbook

import (
	"fmt"
	"io"

	"report-reconciler/core/table"

	"github.com/xuri/excelize/v2"
)

// HighlightColor is the fill used for highlighted cells.
const HighlightColor = "FFC7CE"

// Position addresses a data cell. Row 0 is the first row under the header.
type Position struct {
	Row int
	Col int
}

// Sheet is one worksheet of an output workbook.
type Sheet struct {
	Name       string
	Header     []string
	Rows       [][]any
	Highlights []Position
}

// FromTable builds a sheet holding a table.
func FromTable(name string, t *table.Table) Sheet {
	s := Sheet{Name: name, Header: t.Names(), Rows: make([][]any, t.NumRows())}
	for i := range s.Rows {
		s.Rows[i] = t.Row(i)
	}
	return s
}

// Highlight marks the cell in the given row and named column.
// Unknown column names are ignored.
func (s *Sheet) Highlight(row int, column string) {
	for j, h := range s.Header {
		if h == column {
			s.Highlights = append(s.Highlights, Position{Row: row, Col: j})
			return
		}
	}
}

// Build lays the sheets out in a new workbook. The caller closes the file.
func Build(sheets ...Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	fill, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{HighlightColor}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create highlight style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err == nil {
			err = writeSheet(f, s, bold, fill)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to write sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, s Sheet, bold, fill int) error {
	header := make([]any, len(s.Header))
	for j, h := range s.Header {
		header[j] = h
	}
	if err := f.SetSheetRow(s.Name, "A1", &header); err != nil {
		return err
	}
	if len(s.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A1", last, bold); err != nil {
			return err
		}
	}

	for i, row := range s.Rows {
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		copy(values, row)
		if err := f.SetSheetRow(s.Name, start, &values); err != nil {
			return err
		}
	}

	for _, p := range s.Highlights {
		cell, err := excelize.CoordinatesToCellName(p.Col+1, p.Row+2)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, cell, cell, fill); err != nil {
			return err
		}
	}
	return nil
}

// Write encodes the sheets as an xlsx workbook to w.
func Write(w io.Writer, sheets ...Sheet) error {
	f, err := Build(sheets...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}

// Save writes the sheets to an xlsx file, replacing any previous file.
func Save(path string, sheets ...Sheet) error {
	f, err := Build(sheets...)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
