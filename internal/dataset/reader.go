package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for sheet files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported sheet format")

const utf8BOM = "\ufeff"

// Source yields the raw rows of a sales sheet.
type Source interface {
	Rows(ctx context.Context) (RawRows, error)
}

// FileSource reads a sheet from a .csv or .xlsx file.
type FileSource struct {
	Path string
	// Sheet names the worksheet of an .xlsx file; the first sheet when empty.
	Sheet string
}

// Rows implements Source.
func (f FileSource) Rows(ctx context.Context) (RawRows, error) {
	return Open(ctx, f.Path, f.Sheet)
}

// LoadFrom reads a source and aggregates it.
func LoadFrom(ctx context.Context, src Source, opts Options) (*model.Dataset, error) {
	rows, err := src.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return Load(rows, opts)
}

// Open reads a sheet file, choosing the reader from the file extension.
func Open(ctx context.Context, path, sheet string) (RawRows, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return ReadCSV(ctx, f)
	case ".xlsx", ".xlsm":
		return ReadXLSX(ctx, f, sheet)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadCSV tokenises CSV text. Rows may have differing widths.
func ReadCSV(ctx context.Context, r io.Reader) (RawRows, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows RawRows
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", len(rows)+1, err)
		}

		if len(rows) == 0 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], utf8BOM)
		}
		rows = append(rows, record)
	}

	return rows, nil
}

// ReadXLSX reads the named worksheet (or the first one) of an XLSX workbook.
func ReadXLSX(ctx context.Context, r io.Reader, sheet string) (RawRows, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return rows, nil
}
