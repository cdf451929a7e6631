package testing

import (
	"regexp"
	"strings"

	"github.com/Veraticus/drivetrain/internal/dataset"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/testutil"
	"github.com/stretchr/testify/require"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes all ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// Lines strips escape codes and splits the output into lines.
func Lines(output string) []string {
	return strings.Split(StripANSI(output), "\n")
}

// ContainsInOrder checks if the output contains all specified strings in order.
func ContainsInOrder(output string, expected ...string) bool {
	lastIndex := 0
	for _, exp := range expected {
		index := strings.Index(output[lastIndex:], exp)
		if index == -1 {
			return false
		}
		lastIndex += index + len(exp)
	}
	return true
}

// FleetRows is a small sheet covering every powertrain type over three
// months.
func FleetRows() dataset.RawRows {
	return testutil.FleetRows()
}

// Fleet loads FleetRows.
func Fleet(t require.TestingT) *model.Dataset {
	ds, err := dataset.Load(FleetRows(), dataset.Options{})
	require.NoError(t, err)
	return ds
}
