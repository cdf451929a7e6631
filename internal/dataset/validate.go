package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/model"
)

// Validate checks the structural contract of a sheet: aligned header rows,
// data rows as wide as the header, known type keys, unique vehicles and
// strictly increasing months. All problems found are joined into one error.
func Validate(rows RawRows) error {
	if err := checkShape(rows); err != nil {
		return err
	}

	var errs []error
	width := rows.HeaderWidth()

	for i := MakeRow; i <= TypeRow; i++ {
		if len(rows[i]) != width {
			errs = append(errs, fmt.Errorf("%w: header row %d has %d columns, want %d",
				common.ErrInvalidLayout, i+1, len(rows[i]), width))
		}
	}

	seen := make(map[model.VehicleKey]int, width)
	for col := 1; col < width; col++ {
		if _, ok := model.ParseTypeKey(rows.cell(TypeRow, col)); !ok {
			errs = append(errs, fmt.Errorf("%w: column %d has unknown type %q",
				common.ErrInvalidLayout, col+1, rows.cell(TypeRow, col)))
		}

		key := model.NewVehicleKey(rows.cell(MakeRow, col), rows.cell(ModelRow, col))
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%w: column %d repeats vehicle %q from column %d",
				common.ErrInvalidLayout, col+1, key, first+1))
			continue
		}
		seen[key] = col
	}

	var lastDate time.Time
	lastLabel := ""
	for i, row := range rows.DataRows() {
		rowNum := FirstDataRow + i + 1
		if len(row) != width {
			errs = append(errs, fmt.Errorf("%w: row %d has %d columns, want %d",
				common.ErrInvalidLayout, rowNum, len(row), width))
		}

		date, label, err := rowMonth(row, FirstDataRow+i)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if lastLabel != "" && !date.After(lastDate) {
			errs = append(errs, fmt.Errorf("%w: row %d (%s) is not after %s",
				common.ErrUnorderedMonths, rowNum, label, lastLabel))
		}
		lastDate, lastLabel = date, label
	}

	return errors.Join(errs...)
}
