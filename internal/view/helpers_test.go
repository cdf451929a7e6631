package view

import (
	"testing"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/stretchr/testify/require"
)

func loadRows(t *testing.T, rows dataset.RawRows) *model.Dataset {
	t.Helper()
	ds, err := dataset.Load(rows, dataset.Options{})
	require.NoError(t, err)
	return ds
}

// twoVehicles is one month with an HEV selling 10 and a BEV selling 5.
func twoVehicles(t *testing.T) *model.Dataset {
	return loadRows(t, dataset.RawRows{
		{"", "A", "B"},
		{"", "X", "Y"},
		{"", "HEV", "BEV"},
		{"2017-05", "10", "5"},
	})
}

func fleet(t *testing.T) *model.Dataset {
	return loadRows(t, dataset.RawRows{
		{"", "Toyota", "Honda", "Chevrolet", "Nissan", "Tesla", "Toyota"},
		{"", "Prius", "Insight", "Volt", "Leaf", "Model S", "Mirai"},
		{"", "HEV", "HEV", "PHEV", "BEV", "BEV", "FCEV"},
		{"2016-01", "100", "20", "30", "40", "50", "0"},
		{"2016-02", "110", "0", "35", "70", "60", "1"},
		{"2016-03", "90", "25", "40", "45", "10", "2"},
	})
}
