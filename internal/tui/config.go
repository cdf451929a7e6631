package tui

import (
	"time"

	"github.com/Veraticus/drivetrain/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme            themes.Theme
	Width            int
	Height           int
	FPS              int
	EnableAnimations bool
	MouseSupport     bool
	ShowLegend       bool
	ShowHelp         bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:            themes.Default,
		Width:            80,
		Height:           24,
		FPS:              30,
		EnableAnimations: true,
		MouseSupport:     true,
		ShowLegend:       true,
		ShowHelp:         true,
	}
}

// frameInterval is the animation time one frame advances.
func (c Config) frameInterval() time.Duration {
	fps := c.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFPS sets the animation frame rate.
func WithFPS(fps int) Option {
	return func(c *Config) {
		c.FPS = fps
	}
}

// WithFeatures configures UI features.
func WithFeatures(animations, mouse, legend, help bool) Option {
	return func(c *Config) {
		c.EnableAnimations = animations
		c.MouseSupport = mouse
		c.ShowLegend = legend
		c.ShowHelp = help
	}
}
