package sheet

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ErrNoSource is returned by SaveColumns for a table that was not read by
// ReadTable, or whose rows were removed without Filter.
var ErrNoSource = errors.New("table has no source rows")

// Table is a worksheet read as strings: a header row and data rows padded
// to the header width.
type Table struct {
	Header []string
	Rows   [][]string

	// source is the worksheet row number of each entry of Rows.
	source []int
}

// Filter keeps the rows for which keep returns true and reports how many
// were removed.
func (t *Table) Filter(keep func(row []string) bool) int {
	tracked := len(t.source) == len(t.Rows)
	rows := t.Rows[:0]
	var source []int
	for i, row := range t.Rows {
		if !keep(row) {
			continue
		}
		rows = append(rows, row)
		if tracked {
			source = append(source, t.source[i])
		}
	}
	dropped := len(t.Rows) - len(rows)
	t.Rows = rows
	if tracked {
		t.source = source
	}
	return dropped
}

// Column returns the index of the header named name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Values returns the cells of the named column, or nil when the column does
// not exist.
func (t *Table) Values(name string) []string {
	col := t.Column(name)
	if col < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[col]
	}
	return out
}

// ReadTable reads a worksheet of the workbook at path. An empty sheet name
// reads the first sheet.
func ReadTable(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	t := &Table{}
	if len(rows) == 0 {
		return t, nil
	}
	t.Header = rows[0]
	for i, row := range rows[1:] {
		// GetRows trims trailing empty cells.
		padded := make([]string, max(len(t.Header), len(row)))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
		t.source = append(t.source, i+2)
	}
	return t, nil
}

// SaveColumns writes the named columns of t back over the workbook at src
// and saves the result at dst. Worksheet rows no longer in t are removed.
// Only cells whose text changed are rewritten, so every other cell keeps
// its value, type and style.
func SaveColumns(src, dst, sheet string, t *Table, columns []string) error {
	if len(t.source) != len(t.Rows) {
		return ErrNoSource
	}
	f, err := excelize.OpenFile(src)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", filepath.Base(src), err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	kept := make(map[int]bool, len(t.Rows))
	for i, row := range t.Rows {
		r := t.source[i]
		kept[r] = true
		for _, name := range columns {
			col := t.Column(name)
			if col < 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, r)
			if err != nil {
				return err
			}
			cur, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", cell, err)
			}
			if cur == row[col] {
				continue
			}
			if err := f.SetCellStr(sheet, cell, row[col]); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	// Bottom up, so row numbers above stay valid.
	for r := len(rows); r >= 2; r-- {
		if kept[r] {
			continue
		}
		if err := f.RemoveRow(sheet, r); err != nil {
			return fmt.Errorf("failed to remove row %d: %w", r, err)
		}
	}

	if err := f.SaveAs(dst); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filepath.Base(dst), err)
	}
	return nil
}

// WriteTable saves t as the only worksheet of a new workbook at path.
func WriteTable(path, sheet string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", filepath.Base(path), err)
	}
	return nil
}
