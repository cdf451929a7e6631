package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/drivetrain/internal/common"
)

// monthLayouts are tried in order when reading a month label.
var monthLayouts = []string{
	"2006-01",
	"Jan 2006",
	"January 2006",
	"Jan-2006",
	"01/2006",
	"1/2006",
	"2006/01",
	"2006-01-02",
}

// ParseMonth reads a "Month Year" label and returns the first day of that month in UTC.
func ParseMonth(label string) (time.Time, error) {
	s := strings.TrimSpace(label)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty label", common.ErrInvalidMonth)
	}

	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", common.ErrInvalidMonth, label)
}

// FormatMonth renders a month the way the date axis labels it.
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}
