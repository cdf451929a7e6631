// Package dataset turns a vehicle sales sheet into the monthly aggregates the chart draws.
//
// A sheet has three header rows (make, model, powertrain type) followed by one row
// per month: a month label in column 0 and unit sales in every other column.
package dataset

import "strings"

// Header and data row positions.
const (
	MakeRow      = 0
	ModelRow     = 1
	TypeRow      = 2
	FirstDataRow = 3
)

// RawRows is a sales sheet tokenised into string cells.
type RawRows [][]string

// cell returns the trimmed cell at (row, col), or "" when it does not exist.
func (r RawRows) cell(row, col int) string {
	if row < 0 || row >= len(r) || col < 0 || col >= len(r[row]) {
		return ""
	}
	return strings.TrimSpace(r[row][col])
}

// HeaderWidth returns the number of columns described by the header rows,
// including the reserved column 0.
func (r RawRows) HeaderWidth() int {
	width := 0
	for i := MakeRow; i <= TypeRow && i < len(r); i++ {
		if len(r[i]) > width {
			width = len(r[i])
		}
	}
	return width
}

// DataRows returns the monthly rows below the header.
func (r RawRows) DataRows() [][]string {
	if len(r) <= FirstDataRow {
		return nil
	}
	return r[FirstDataRow:]
}
