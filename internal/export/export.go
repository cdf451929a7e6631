package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts a format name in any case; "yml" is YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q (use csv, json, yaml or xlsx)", ErrUnknownFormat, s)
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Write encodes ds in the given format.
func Write(w io.Writer, ds *model.Dataset, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, ds)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(ds)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(ds)); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case FormatXLSX:
		return writeXLSX(w, ds)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteFile writes ds to path in the given format.
func WriteFile(path string, ds *model.Dataset, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return Write(f, ds, format)
}

// writeCSV writes one row per month: the type totals, their sum, then every
// vehicle in lineup order.
func writeCSV(w io.Writer, ds *model.Dataset) error {
	types := TypeTotalsTable(ds)
	vehicles := VehicleSalesTable(ds)

	cw := csv.NewWriter(w)
	header := append(append([]string{}, types.Header...), vehicles.Header[1:]...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, row := range types.Rows {
		record := cells(row)
		if i < len(vehicles.Rows) {
			record = append(record, cells(vehicles.Rows[i][1:])...)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func cells(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		switch v := v.(type) {
		case string:
			out[i] = v
		case int:
			out[i] = strconv.Itoa(v)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// writeXLSX writes every table to its own worksheet with a bold header.
func writeXLSX(w io.Writer, ds *model.Dataset) error {
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range Tables(ds) {
		if i == 0 {
			if err := wb.SetSheetName(wb.GetSheetName(0), table.Name); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := wb.NewSheet(table.Name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", table.Name, err)
		}

		if err := writeTable(wb, table, bold); err != nil {
			return err
		}
	}

	if _, err := wb.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeTable(wb *excelize.File, table Table, headerStyle int) error {
	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := wb.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", table.Name, err)
	}

	last, err := excelize.CoordinatesToCellName(max(len(header), 1), 1)
	if err != nil {
		return fmt.Errorf("failed to address %s header: %w", table.Name, err)
	}
	if err := wb.SetCellStyle(table.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", table.Name, err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address %s row %d: %w", table.Name, i+1, err)
		}
		values := row
		if err := wb.SetSheetRow(table.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", table.Name, i+1, err)
		}
	}
	return nil
}
