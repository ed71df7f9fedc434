package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Supported input formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ErrUnsupportedFormat is returned for input formats other than csv and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported input format")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions controls CSV output.
type WriteOptions struct {
	// BOM prefixes the file with a UTF-8 byte-order mark so spreadsheet tools show accents correctly.
	BOM bool
}

// ReadCSV reads a header row followed by data rows. Empty fields become null.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return fromRecords(records)
}

// ReadXLSX reads the named sheet, or the first sheet when sheet is empty.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptyHeader
		}

		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return fromRecords(rows)
}

// ReadFile loads a raw export. An empty format is inferred from the file extension.
func ReadFile(path, format, sheet string) (*Table, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	switch format {
	case FormatCSV:
		return ReadCSV(f)
	case FormatXLSX:
		return ReadXLSX(f, sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteCSV writes the header and every row. Null cells are written as empty fields.
func WriteCSV(w io.Writer, t *Table, opts WriteOptions) error {
	if opts.BOM {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.columns))

	for _, row := range t.rows {
		for i, cell := range row {
			record[i] = cell.String()
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// WriteCSVFile writes the table to path, creating parent directories.
func WriteCSVFile(path string, t *Table, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	if err := WriteCSV(f, t, opts); err != nil {
		_ = f.Close()

		return err
	}

	return f.Close()
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmptyHeader
	}

	header := make([]string, len(records[0]))
	copy(header, records[0])
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	t, err := New(header)
	if err != nil {
		return nil, err
	}

	for line, record := range records[1:] {
		if len(record) > len(header) {
			if !trailingEmpty(record[len(header):]) {
				return nil, fmt.Errorf("%w: data row %d has %d fields, header has %d",
					ErrRowWidth, line+1, len(record), len(header))
			}

			record = record[:len(header)]
		}

		if len(record) == 0 {
			continue
		}

		cells := make([]Cell, len(header))
		for i, v := range record {
			if v != "" {
				cells[i] = String(v)
			}
		}

		t.rows = append(t.rows, cells)
	}

	return t, nil
}

func trailingEmpty(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}

	return true
}
