package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatters(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "✓ saved")
	assert.Contains(t, FormatError("failed"), "✗ failed")
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("note"), "note")
	assert.Contains(t, FormatTitle("Sales"), "⚡ Sales")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Month", "HEV"},
		[][]string{{"Jan 2016", "120"}, {"Feb 2016", "7"}},
		AlignLeft, AlignRight,
	)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Month")
	assert.Contains(t, lines[1], "Jan 2016")

	// numbers line up on the right edge
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), "120"))
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[2], " "), "  7"))
}

func TestRenderTable_ShortRows(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"x"}})
	assert.Len(t, strings.Split(out, "\n"), 2)
}
