package dataset

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/drivetrain/internal/common"
	"github.com/Veraticus/drivetrain/internal/model"
)

// Options controls how a sheet is loaded.
type Options struct {
	// Strict rejects sheets that fail Validate instead of loading them as-is.
	Strict bool
}

// Load builds both aggregates from a sheet.
func Load(rows RawRows, opts Options) (*model.Dataset, error) {
	if opts.Strict {
		if err := Validate(rows); err != nil {
			return nil, err
		}
	}

	if err := checkShape(rows); err != nil {
		return nil, err
	}

	types, err := ParseTypeTotals(rows)
	if err != nil {
		return nil, err
	}

	vehicles, err := ParseVehicleSales(rows)
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{
		Types:    types,
		Vehicles: vehicles,
		Lineup:   Lineup(rows),
	}

	if !opts.Strict {
		if i := firstUnorderedMonth(ds.Dates()); i > 0 {
			slog.Warn("Months are not in chronological order; the date axis will fold back",
				"row", FirstDataRow+i,
				"month", types[i].Label)
		}
		if repeats := repeatedVehicles(rows); len(repeats) > 0 {
			slog.Warn("Vehicle columns repeat a make and model; the last column wins",
				"columns", repeats)
		}
	}

	slog.Debug("Loaded sales dataset",
		"months", ds.Months(),
		"vehicles", len(ds.Lineup))

	return ds, nil
}

func checkShape(rows RawRows) error {
	if len(rows) < FirstDataRow {
		return fmt.Errorf("%w: need make, model and type header rows, got %d rows", common.ErrInvalidLayout, len(rows))
	}
	if len(rows) == FirstDataRow {
		return common.ErrEmptyDataset
	}
	return nil
}

// ParseTypeTotals sums every data row's sales per powertrain type, using the
// type header of each column. Columns with an unknown type are not counted.
// One record is produced per data row, in sheet order.
func ParseTypeTotals(rows RawRows) ([]model.MonthlyTypeTotals, error) {
	if err := checkShape(rows); err != nil {
		return nil, err
	}

	totals := make([]model.MonthlyTypeTotals, 0, len(rows)-FirstDataRow)
	for i, row := range rows.DataRows() {
		date, label, err := rowMonth(row, FirstDataRow+i)
		if err != nil {
			return nil, err
		}

		record := model.MonthlyTypeTotals{Date: date, Label: label}
		for col := 1; col < len(row); col++ {
			typeKey, ok := model.ParseTypeKey(rows.cell(TypeRow, col))
			if !ok {
				continue
			}
			record.Add(typeKey, CoerceSales(row[col]))
		}
		totals = append(totals, record)
	}

	return totals, nil
}

// ParseVehicleSales maps every data row's cells to their vehicle, keyed by
// make + " " + model. Every month carries the same key set, taken from the header.
func ParseVehicleSales(rows RawRows) ([]model.MonthlyVehicleSales, error) {
	if err := checkShape(rows); err != nil {
		return nil, err
	}

	width := rows.HeaderWidth()
	out := make([]model.MonthlyVehicleSales, 0, len(rows)-FirstDataRow)
	for i, row := range rows.DataRows() {
		date, label, err := rowMonth(row, FirstDataRow+i)
		if err != nil {
			return nil, err
		}

		sales := model.NewVehicleSalesMap(width)
		for col := 1; col < width; col++ {
			vehicleMake := rows.cell(MakeRow, col)
			vehicleModel := rows.cell(ModelRow, col)
			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			sales.Set(model.NewVehicleKey(vehicleMake, vehicleModel), model.VehicleSales{
				Make:  vehicleMake,
				Model: vehicleModel,
				Type:  model.TypeKey(rows.cell(TypeRow, col)),
				Sales: CoerceSales(cell),
			})
		}

		out = append(out, model.MonthlyVehicleSales{Date: date, Label: label, Sales: sales})
	}

	return out, nil
}

// Lineup lists the vehicles described by the header, in column order.
// A repeated make and model keeps its first position but takes the type of
// its last column, the one whose sales ParseVehicleSales keeps.
func Lineup(rows RawRows) []model.Vehicle {
	width := rows.HeaderWidth()
	index := make(map[model.VehicleKey]int, width)
	lineup := make([]model.Vehicle, 0, width)

	for col := 1; col < width; col++ {
		vehicleMake := rows.cell(MakeRow, col)
		vehicleModel := rows.cell(ModelRow, col)
		v := model.Vehicle{
			Key:    model.NewVehicleKey(vehicleMake, vehicleModel),
			Make:   vehicleMake,
			Model:  vehicleModel,
			Type:   model.TypeKey(rows.cell(TypeRow, col)),
			Column: col,
		}
		if i, ok := index[v.Key]; ok {
			lineup[i] = v
			continue
		}
		index[v.Key] = len(lineup)
		lineup = append(lineup, v)
	}

	return lineup
}

// repeatedVehicles returns the columns that repeat an earlier make and model.
func repeatedVehicles(rows RawRows) []int {
	var repeats []int
	seen := make(map[model.VehicleKey]bool)
	for col := 1; col < rows.HeaderWidth(); col++ {
		key := model.NewVehicleKey(rows.cell(MakeRow, col), rows.cell(ModelRow, col))
		if seen[key] {
			repeats = append(repeats, col)
		}
		seen[key] = true
	}
	return repeats
}

// FilterToSelectedType copies totals with every type zeroed except selected.
// The result stacks like the full dataset, so the single-type view reuses the
// same band drawing.
func FilterToSelectedType(totals []model.MonthlyTypeTotals, selected model.TypeKey) []model.MonthlyTypeTotals {
	out := make([]model.MonthlyTypeTotals, len(totals))
	for i, m := range totals {
		out[i] = model.MonthlyTypeTotals{Date: m.Date, Label: m.Label}
		out[i].Set(selected, m.Get(selected))
	}
	return out
}

func rowMonth(row []string, rowIndex int) (time.Time, string, error) {
	if len(row) == 0 {
		return time.Time{}, "", fmt.Errorf("row %d: %w: empty row", rowIndex+1, common.ErrInvalidMonth)
	}
	date, err := ParseMonth(row[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("row %d: %w", rowIndex+1, err)
	}
	return date, row[0], nil
}

// firstUnorderedMonth returns the index of the first month that is not after
// its predecessor, or -1.
func firstUnorderedMonth(dates []time.Time) int {
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return i
		}
	}
	return -1
}
