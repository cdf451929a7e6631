package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/service"
)

// SaveRows stores a raw sheet under name, replacing any dataset of that
// name. progress, when set, is called after every stored row.
func (s *SQLiteStorage) SaveRows(ctx context.Context, name, source string, rows dataset.RawRows, progress service.ProgressFunc) (*model.StoredDataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}
	if err := validateRows(rows); err != nil {
		return nil, err
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name); err != nil {
			return fmt.Errorf("failed to replace dataset: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO datasets (name, source, row_count, column_count, checksum)
			VALUES (?, ?, ?, ?, ?)`,
			name, source, len(rows), maxWidth(rows), Checksum(rows))
		if err != nil {
			return fmt.Errorf("failed to insert dataset: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get dataset id: %w", err)
		}

		return saveRowsTx(ctx, tx, id, rows, progress)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Stored dataset", "name", name, "rows", len(rows))
	return s.GetDataset(ctx, name)
}

func saveRowsTx(ctx context.Context, tx *sql.Tx, id int64, rows dataset.RawRows, progress service.ProgressFunc) error {
	rowStmt, err := tx.PrepareContext(ctx, `INSERT INTO dataset_rows (dataset_id, row_index, width) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer func() { _ = rowStmt.Close() }()

	cellStmt, err := tx.PrepareContext(ctx, `INSERT INTO dataset_cells (dataset_id, row_index, col_index, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer func() { _ = cellStmt.Close() }()

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := rowStmt.ExecContext(ctx, id, i, len(row)); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
		for j, value := range row {
			if value == "" {
				continue
			}
			if _, err := cellStmt.ExecContext(ctx, id, i, j, value); err != nil {
				return fmt.Errorf("failed to insert row %d column %d: %w", i+1, j+1, err)
			}
		}

		if progress != nil {
			progress(i+1, len(rows))
		}
	}
	return nil
}

// LoadRows returns the raw sheet stored under name exactly as it was saved.
func (s *SQLiteStorage) LoadRows(ctx context.Context, name string) (dataset.RawRows, error) {
	info, err := s.GetDataset(ctx, name)
	if err != nil {
		return nil, err
	}

	rows := make(dataset.RawRows, info.Rows)

	widths, err := s.db.QueryContext(ctx, `
		SELECT row_index, width FROM dataset_rows
		WHERE dataset_id = ? ORDER BY row_index`, info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer func() { _ = widths.Close() }()

	for widths.Next() {
		var index, width int
		if err := widths.Scan(&index, &width); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if index < 0 || index >= len(rows) {
			return nil, fmt.Errorf("dataset %q has row %d outside its %d rows", name, index, len(rows))
		}
		rows[index] = make([]string, width)
	}
	if err := widths.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	cells, err := s.db.QueryContext(ctx, `
		SELECT row_index, col_index, value FROM dataset_cells
		WHERE dataset_id = ?`, info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer func() { _ = cells.Close() }()

	for cells.Next() {
		var row, col int
		var value string
		if err := cells.Scan(&row, &col, &value); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
			return nil, fmt.Errorf("dataset %q has cell (%d, %d) outside its rows", name, row, col)
		}
		rows[row][col] = value
	}
	if err := cells.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cells: %w", err)
	}

	return rows, nil
}

// GetDataset returns the description of a stored dataset.
func (s *SQLiteStorage) GetDataset(ctx context.Context, name string) (*model.StoredDataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, row_count, column_count, checksum, imported_at
		FROM datasets WHERE name = ?`, name)

	info, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}
	return info, nil
}

// ListDatasets returns every stored dataset ordered by name.
func (s *SQLiteStorage) ListDatasets(ctx context.Context) ([]model.StoredDataset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source, row_count, column_count, checksum, imported_at
		FROM datasets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.StoredDataset
	for rows.Next() {
		info, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		out = append(out, *info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating datasets: %w", err)
	}
	return out, nil
}

// DeleteDataset removes a stored dataset and its rows.
func (s *SQLiteStorage) DeleteDataset(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dataset %q: %w", name, common.ErrNotFound)
	}
	return nil
}

// Source returns a dataset.Source reading the named dataset.
func (s *SQLiteStorage) Source(name string) dataset.Source {
	return storedSource{store: s, name: name}
}

type storedSource struct {
	store *SQLiteStorage
	name  string
}

func (src storedSource) Rows(ctx context.Context) (dataset.RawRows, error) {
	return src.store.LoadRows(ctx, src.name)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDataset(sc scanner) (*model.StoredDataset, error) {
	var info model.StoredDataset
	if err := sc.Scan(&info.ID, &info.Name, &info.Source, &info.Rows, &info.Columns, &info.Checksum, &info.ImportedAt); err != nil {
		return nil, err
	}
	return &info, nil
}

// Checksum fingerprints a raw sheet, cell by cell.
func Checksum(rows dataset.RawRows) string {
	h := sha256.New()
	for _, row := range rows {
		_, _ = h.Write([]byte(strconv.Itoa(len(row))))
		for _, cell := range row {
			_, _ = h.Write([]byte{0x1f})
			_, _ = h.Write([]byte(cell))
		}
		_, _ = h.Write([]byte{0x1e})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func maxWidth(rows dataset.RawRows) int {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	return width
}
