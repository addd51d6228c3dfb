// Package report exports augmented frames into spreadsheet files for
// sharing outside the analysis pipeline.
package report

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-modelframe/frame"
	"github.com/xuri/excelize/v2"
)

var ErrNoFrame = errors.New("no frame to export")

const dateFormat = "2006-01-02"

// WriteXLSX writes the frame into a single sheet xlsx file at path with
// column names as the header row. Time values are formatted as dates.
func WriteXLSX(f *frame.Frame, path, sheet string) error {
	if f == nil {
		return ErrNoFrame
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	file := excelize.NewFile()
	defer file.Close()

	idx, err := file.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("unable to create sheet %q, %w", sheet, err)
	}
	file.SetActiveSheet(idx)
	if sheet != "Sheet1" {
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("unable to drop default sheet, %w", err)
		}
	}

	names := f.Names()
	for i, name := range names {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	for colIdx, name := range names {
		vals, err := cellValues(f, name)
		if err != nil {
			return err
		}
		for rowIdx, val := range vals {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := file.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("unable to save xlsx report, %w", err)
	}
	return nil
}

func cellValues(f *frame.Frame, name string) ([]any, error) {
	col, err := f.Col(name)
	if err != nil {
		return nil, err
	}

	vals := make([]any, 0, f.NumRows())
	switch col.Kind() {
	case frame.Float64:
		floats, err := f.Floats(name)
		if err != nil {
			return nil, err
		}
		for _, v := range floats {
			vals = append(vals, v)
		}
	case frame.String:
		strs, err := f.Strings(name)
		if err != nil {
			return nil, err
		}
		for _, v := range strs {
			vals = append(vals, v)
		}
	case frame.Time:
		times, err := f.Times(name)
		if err != nil {
			return nil, err
		}
		for _, v := range times {
			vals = append(vals, v.Format(dateFormat))
		}
	}
	return vals, nil
}
