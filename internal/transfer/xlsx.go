package transfer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/roster/internal/models"
)

// SheetName is the worksheet written by WriteXLSX
const SheetName = "Dienstplan"

// WriteXLSX writes the header and rows into a single-sheet workbook
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, i+2, r.Fields()); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// ExportXLSX renders the roster as an XLSX workbook into w
func ExportXLSX(w io.Writer, weeks []models.Week, employees []models.Employee, lookup Lookup, dateFormat string) error {
	return WriteXLSX(w, BuildRows(weeks, employees, lookup, dateFormat))
}

func setRow(f *excelize.File, n int, fields []string) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(fields))
	for i, v := range fields {
		values[i] = v
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", n, err)
	}
	return nil
}

// ParseXLSX reads the first worksheet of a workbook like ParseCSV
func ParseXLSX(r io.Reader, employees []models.Employee, weeks []models.Week) ([]models.Cell, ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return []models.Cell{}, ImportReport{}, nil
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return parseRecords(records, employees, weeks)
}
