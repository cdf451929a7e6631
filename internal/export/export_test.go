package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

func fleet(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := dataset.Load(dataset.RawRows{
		{"", "Toyota", "Honda", "Chevrolet", "Nissan", "Tesla", "Toyota"},
		{"", "Prius", "Insight", "Volt", "Leaf", "Model S", "Mirai"},
		{"", "HEV", "HEV", "PHEV", "BEV", "BEV", "FCEV"},
		{"2016-01", "100", "20", "30", "40", "50", "0"},
		{"2016-02", "110", "0", "35", "70", "60", "1"},
		{"2016-03", "90", "25", "40", "45", "10", "2"},
	}, dataset.Options{})
	require.NoError(t, err)
	return ds
}

func TestTypeTotalsTable(t *testing.T) {
	table := TypeTotalsTable(fleet(t))

	assert.Equal(t, TypeTotalsSheet, table.Name)
	assert.Equal(t, []string{"Month", "HEV", "PHEV", "BEV", "FCEV", "Total"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []any{"2016-01", 120, 30, 90, 0, 240}, table.Rows[0])
	assert.Equal(t, []any{"2016-03", 115, 40, 55, 2, 212}, table.Rows[2])
}

func TestVehicleSalesTable(t *testing.T) {
	table := VehicleSalesTable(fleet(t))

	assert.Equal(t, []string{"Month", "Toyota Prius", "Honda Insight", "Chevrolet Volt", "Nissan Leaf", "Tesla Model S", "Toyota Mirai"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []any{"2016-02", 110, 0, 35, 70, 60, 1}, table.Rows[1])
}

func TestLineupTable(t *testing.T) {
	table := LineupTable(fleet(t))

	require.Len(t, table.Rows, 6)
	assert.Equal(t, []any{"Nissan Leaf", "Nissan", "Leaf", "BEV", 155}, table.Rows[3])
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fleet(t), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4, "header plus one row per month")

	assert.Equal(t, []string{
		"Month", "HEV", "PHEV", "BEV", "FCEV", "Total",
		"Toyota Prius", "Honda Insight", "Chevrolet Volt", "Nissan Leaf", "Tesla Model S", "Toyota Mirai",
	}, records[0])
	assert.Equal(t, []string{"2016-02", "110", "35", "130", "1", "276", "110", "0", "35", "70", "60", "1"}, records[2])
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fleet(t), FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Types, 3)
	assert.Equal(t, TypeMonth{Month: "2016-02", HEV: 110, PHEV: 35, BEV: 130, FCEV: 1, Total: 276}, doc.Types[1])
	assert.Equal(t, 70, doc.Vehicles[1].Sales["Nissan Leaf"])
	assert.Equal(t, "FCEV", doc.Lineup[5].Type)
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fleet(t), FormatYAML))

	var doc Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, NewDocument(fleet(t)), doc)
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fleet(t), FormatXLSX))

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()

	assert.Equal(t, []string{TypeTotalsSheet, VehicleSalesSheet, LineupSheet}, wb.GetSheetList())

	rows, err := wb.GetRows(TypeTotalsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"2016-01", "120", "30", "90", "0", "240"}, rows[1])

	rows, err = wb.GetRows(LineupSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Toyota Prius", "Toyota", "Prius", "HEV", "300"}, rows[1])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.yml")
	format, err := FormatForPath(path)
	require.NoError(t, err)
	require.Equal(t, FormatYAML, format)

	require.NoError(t, WriteFile(path, fleet(t), format))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Len(t, doc.Types, 3)
}

func TestWriteFile_CSVReadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, WriteFile(path, fleet(t), FormatCSV))

	rows, err := dataset.Open(t.Context(), path, "")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "yaml", want: FormatYAML},
		{in: "xlsx", want: FormatXLSX},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
