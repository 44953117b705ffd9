package transfer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/roster/internal/models"
)

const (
	csvDelimiter = ";"
	csvNewline   = "\r\n"
)

// WriteCSV writes the header and rows with every field quoted, semicolon
// separated and CRLF between lines. The last line has no terminator.
func WriteCSV(w io.Writer, rows []Row) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvLine(Header)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := bw.WriteString(csvNewline + csvLine(r.Fields())); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportCSV renders the roster as CSV text
func ExportCSV(weeks []models.Week, employees []models.Employee, lookup Lookup, dateFormat string) string {
	var b strings.Builder
	// strings.Builder never fails
	_ = WriteCSV(&b, BuildRows(weeks, employees, lookup, dateFormat))
	return b.String()
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, csvDelimiter)
}

// ParseCSV reads a semicolon separated export back into cells for the given
// employees and weeks. Unmatched rows are skipped and counted in the report.
func ParseCSV(r io.Reader, employees []models.Employee, weeks []models.Week) ([]models.Cell, ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("failed to read csv: %w", err)
	}
	return parseRecords(records, employees, weeks)
}
