package chart

import (
	"testing"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/stretchr/testify/require"
)

// fleet has monthly type sums of 240, 276 and 212.
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
