package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/drivetrain/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoMonths is returned when there is nothing to chart.
var ErrNoMonths = errors.New("dataset has no months to show")

// Run shows ds in an interactive chart until the user quits or ctx is done.
func Run(ctx context.Context, ds *model.Dataset, opts ...Option) error {
	if ds == nil || ds.Months() == 0 {
		return ErrNoMonths
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	}
	if cfg.MouseSupport {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(newModel(ds, cfg), programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
