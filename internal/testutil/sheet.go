package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
)

// SheetBuilder assembles a sales sheet column by column and month by month.
//
//	rows := testutil.NewSheetBuilder().
//		WithVehicle("Toyota", "Prius", model.TypeHEV).
//		WithVehicle("Nissan", "Leaf", model.TypeBEV).
//		WithMonth("2016-01", 100, 40).
//		Rows()
type SheetBuilder struct {
	makes  []string
	models []string
	types  []string
	months [][]string
}

// NewSheetBuilder starts an empty sheet.
func NewSheetBuilder() *SheetBuilder {
	return &SheetBuilder{}
}

// WithVehicle adds a data column.
func (b *SheetBuilder) WithVehicle(vehicleMake, vehicleModel string, t model.TypeKey) *SheetBuilder {
	b.makes = append(b.makes, vehicleMake)
	b.models = append(b.models, vehicleModel)
	b.types = append(b.types, string(t))
	return b
}

// WithMonth adds a data row with one sales figure per vehicle column.
func (b *SheetBuilder) WithMonth(label string, sales ...int) *SheetBuilder {
	row := make([]string, 0, len(sales)+1)
	row = append(row, label)
	for _, s := range sales {
		row = append(row, strconv.Itoa(s))
	}
	b.months = append(b.months, row)
	return b
}

// WithRawMonth adds a data row exactly as given, for coercion cases.
func (b *SheetBuilder) WithRawMonth(label string, cells ...string) *SheetBuilder {
	b.months = append(b.months, append([]string{label}, cells...))
	return b
}

// Rows returns the sheet with its three header rows.
func (b *SheetBuilder) Rows() dataset.RawRows {
	rows := dataset.RawRows{
		append([]string{""}, b.makes...),
		append([]string{""}, b.models...),
		append([]string{""}, b.types...),
	}
	for _, m := range b.months {
		rows = append(rows, append([]string(nil), m...))
	}
	return rows
}

// Dataset aggregates the sheet or fails the test.
func (b *SheetBuilder) Dataset(t testing.TB) *model.Dataset {
	t.Helper()
	ds, err := dataset.Load(b.Rows(), dataset.Options{})
	if err != nil {
		t.Fatalf("failed to load sheet: %v", err)
	}
	return ds
}

// FleetSheet is six vehicles over three months:
//
//	HEV 345, PHEV 105, BEV 275, FCEV 3; monthly sums 240, 276, 212.
func FleetSheet() *SheetBuilder {
	return NewSheetBuilder().
		WithVehicle("Toyota", "Prius", model.TypeHEV).
		WithVehicle("Honda", "Insight", model.TypeHEV).
		WithVehicle("Chevrolet", "Volt", model.TypePHEV).
		WithVehicle("Nissan", "Leaf", model.TypeBEV).
		WithVehicle("Tesla", "Model S", model.TypeBEV).
		WithVehicle("Toyota", "Mirai", model.TypeFCEV).
		WithMonth("2016-01", 100, 20, 30, 40, 50, 0).
		WithMonth("2016-02", 110, 0, 35, 70, 60, 1).
		WithMonth("2016-03", 90, 25, 40, 45, 10, 2)
}

// FleetRows returns the raw rows of FleetSheet.
func FleetRows() dataset.RawRows {
	return FleetSheet().Rows()
}

// Fleet returns FleetSheet aggregated.
func Fleet(t testing.TB) *model.Dataset {
	t.Helper()
	return FleetSheet().Dataset(t)
}

// WriteCSV writes rows to name inside a fresh temp dir and returns the path.
func WriteCSV(t testing.TB, name string, rows dataset.RawRows) string {
	t.Helper()

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to encode sheet: %v", err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		t.Fatalf("failed to write sheet: %v", err)
	}
	return path
}
