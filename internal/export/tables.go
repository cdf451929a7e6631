// Package export writes the aggregates of a dataset to files.
package export

import (
	"github.com/Veraticus/drivetrain/internal/model"
)

// Sheet names used by every multi-table output.
const (
	TypeTotalsSheet   = "Type Totals"
	VehicleSalesSheet = "Vehicle Sales"
	LineupSheet       = "Lineup"
)

// Table is one rectangular block of output.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Tables returns the type totals, vehicle sales and lineup tables.
func Tables(ds *model.Dataset) []Table {
	return []Table{TypeTotalsTable(ds), VehicleSalesTable(ds), LineupTable(ds)}
}

// TypeTotalsTable has one row per month with the four type totals and
// their sum.
func TypeTotalsTable(ds *model.Dataset) Table {
	header := append([]string{"Month"}, model.TypeKeyStrings()...)
	header = append(header, "Total")

	rows := make([][]any, 0, len(ds.Types))
	for _, m := range ds.Types {
		row := []any{monthLabel(m.Label, m)}
		for _, t := range model.TypeKeys {
			row = append(row, m.Get(t))
		}
		rows = append(rows, append(row, m.Sum()))
	}

	return Table{Name: TypeTotalsSheet, Header: header, Rows: rows}
}

// VehicleSalesTable has one row per month and one column per vehicle in
// lineup order.
func VehicleSalesTable(ds *model.Dataset) Table {
	header := make([]string, 0, len(ds.Lineup)+1)
	header = append(header, "Month")
	for _, v := range ds.Lineup {
		header = append(header, string(v.Key))
	}

	rows := make([][]any, 0, len(ds.Vehicles))
	for i, m := range ds.Vehicles {
		label := m.Label
		if label == "" && i < len(ds.Types) {
			label = monthLabel("", ds.Types[i])
		}
		row := []any{label}
		for _, v := range ds.Lineup {
			row = append(row, m.Sales.Sales(v.Key))
		}
		rows = append(rows, row)
	}

	return Table{Name: VehicleSalesSheet, Header: header, Rows: rows}
}

// LineupTable lists every vehicle with its type and total sales.
func LineupTable(ds *model.Dataset) Table {
	rows := make([][]any, 0, len(ds.Lineup))
	for _, v := range ds.Lineup {
		rows = append(rows, []any{string(v.Key), v.Make, v.Model, string(v.Type), ds.VehicleTotal(v.Key)})
	}
	return Table{
		Name:   LineupSheet,
		Header: []string{"Vehicle", "Make", "Model", "Type", "Total"},
		Rows:   rows,
	}
}

func monthLabel(label string, m model.MonthlyTypeTotals) string {
	if label != "" {
		return label
	}
	return m.Date.Format("2006-01")
}
