package tui

import "time"

// frameMsg advances running transitions by dt.
type frameMsg struct {
	dt time.Duration
}
