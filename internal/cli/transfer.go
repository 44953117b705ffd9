package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/roster/internal/constants"
	"github.com/julianstephens/roster/internal/models"
	"github.com/julianstephens/roster/internal/roster"
	"github.com/julianstephens/roster/internal/transfer"
	"github.com/julianstephens/roster/internal/validation"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// formatOf derives the tabular format from a file name.
func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return formatCSV
	case ".xlsx":
		return formatXLSX
	default:
		return ""
	}
}

type ExportCmd struct {
	Format string `help:"Output format." enum:"csv,xlsx" default:"csv"`
	Output string `help:"Output file. '-' writes to stdout; defaults to dienstplan.csv or dienstplan.xlsx." short:"o"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	format := c.Format
	if f := formatOf(c.Output); f != "" {
		format = f
	}
	output := c.Output
	if output == "" {
		output = constants.DefaultCSVName
		if format == formatXLSX {
			output = constants.DefaultXLSXName
		}
	}

	s, err := ctx.open()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	s.View(func(r *roster.Roster) {
		weeks, employees, dateFormat := r.Weeks(), r.Employees(), r.Settings().DateFormat
		lookup := transfer.Lookup(r.FindCellValue)
		if format == formatXLSX {
			err = transfer.ExportXLSX(&buf, weeks, employees, lookup, dateFormat)
			return
		}
		buf.WriteString(transfer.ExportCSV(weeks, employees, lookup, dateFormat))
	})
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := io.Copy(ctx.out(), &buf)
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	msg := constants.MsgCSVExported
	if format == formatXLSX {
		msg = constants.MsgXLSXExported
	}
	ctx.printf("✓ %s: %s\n", msg, output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"CSV or XLSX file." type:"existingfile"`
	Yes  bool   `help:"Import without confirmation, even when conflicts are found." short:"y"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	format := formatOf(c.File)
	if format == "" {
		return fmt.Errorf("%s: %s", constants.MsgUnknownFormat, filepath.Base(c.File))
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("%s: %w", constants.MsgImportFailed, err)
	}
	defer f.Close()

	s, err := ctx.open()
	if err != nil {
		return err
	}

	var employees []models.Employee
	var weeks []models.Week
	s.View(func(r *roster.Roster) {
		employees, weeks = r.Employees(), r.Weeks()
	})

	var cells []models.Cell
	var report transfer.ImportReport
	if format == formatXLSX {
		cells, report, err = transfer.ParseXLSX(f, employees, weeks)
	} else {
		cells, report, err = transfer.ParseCSV(f, employees, weeks)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", constants.MsgImportFailed, err)
	}
	ctx.println(report.String())

	if conflicts := validation.DetectConflicts(cells); len(conflicts) > 0 {
		result := validation.ValidationResult{Conflicts: conflicts}
		ctx.println(result.FormatReport())
		if !c.Yes {
			ok, err := confirm("Trotz Mehrfachbelegung importieren? Der letzte Wert gewinnt.")
			if err != nil {
				return err
			}
			if !ok {
				ctx.println("Cancelled.")
				return nil
			}
		}
	}

	s.Import(cells)
	ctx.reportToasts(s)
	return nil
}
