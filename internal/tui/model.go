package tui

import (
	"log/slog"
	"time"

	"github.com/Veraticus/drivetrain/internal/engine"
	"github.com/Veraticus/drivetrain/internal/model"
	"github.com/Veraticus/drivetrain/internal/tui/components"
	"github.com/Veraticus/drivetrain/internal/tui/themes"
	"github.com/Veraticus/drivetrain/internal/tui/viewmodel"
	"github.com/Veraticus/drivetrain/internal/view"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state.
type Model struct {
	theme    themes.Theme
	lastErr  error
	engine   *engine.Engine
	help     help.Model
	chart    components.ChartView
	legend   components.LegendView
	focus    viewmodel.BandRef
	config   Config
	keymap   KeyMap
	width    int
	height   int
	ticking  bool
	quitting bool
}

// newModel creates a new model showing ds at the top level.
func newModel(ds *model.Dataset, cfg Config) Model {
	m := Model{
		theme:  cfg.Theme,
		engine: engine.NewWithConfig(ds, engine.Config{Animations: cfg.EnableAnimations}),
		help:   help.New(),
		chart:  components.NewChartView(cfg.Theme),
		legend: components.NewLegendView(cfg.Theme),
		config: cfg,
		keymap: DefaultKeyMap(),
		width:  cfg.Width,
		height: cfg.Height,
	}
	m.help.Styles.ShortKey = cfg.Theme.Bold
	m.help.Styles.ShortDesc = cfg.Theme.Help
	m.help.Styles.FullKey = cfg.Theme.Bold
	m.help.Styles.FullDesc = cfg.Theme.Help
	m.refocus()
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.config.MouseSupport || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		cmd := m.handleClick(msg.X, msg.Y)
		return m, cmd

	case frameMsg:
		m.engine.Advance(msg.dt)
		if m.engine.Busy() {
			return m, m.nextFrame()
		}
		m.ticking = false
		m.refocus()
		return m, nil
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderScreen()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()

	case key.Matches(msg, m.keymap.NextBand):
		m.focus = viewmodel.MoveFocus(viewmodel.FocusOrder(m.engine.Scene()), m.focus, 1)

	case key.Matches(msg, m.keymap.PrevBand):
		m.focus = viewmodel.MoveFocus(viewmodel.FocusOrder(m.engine.Scene()), m.focus, -1)

	case key.Matches(msg, m.keymap.Drill):
		if m.focus.IsZero() {
			m.lastErr = engine.ErrNoTarget
			return m, nil
		}
		m.lastErr = m.engine.ClickBand(m.focus.Layer, m.focus.Key)
		cmd := m.afterDispatch()
		return m, cmd

	case key.Matches(msg, m.keymap.Back):
		// At the top the machine reports the ignored event; elsewhere the
		// back control's clickability guards running transitions.
		if m.engine.State().Level == view.AllTypes {
			m.lastErr = m.engine.Dispatch(view.BackClicked{})
		} else {
			m.lastErr = m.engine.ClickBack()
		}
		cmd := m.afterDispatch()
		return m, cmd

	case key.Matches(msg, m.keymap.Finish):
		m.engine.Finish()
		m.refocus()
	}

	return m, nil
}

// handleClick routes a left click at screen cell (x, y) to the back
// control or the band under it.
func (m *Model) handleClick(x, y int) tea.Cmd {
	cy := y - m.chartTop()
	scene := m.engine.Scene()
	layout := m.chart.Layout()

	if scene.Back.Opacity > 0 && layout.InBack(x, cy, scene.Back.Label) {
		m.lastErr = m.engine.ClickBack()
		return m.afterDispatch()
	}

	xFrac, yFrac, ok := layout.CellToPlot(x, cy)
	if !ok {
		return nil
	}
	m.lastErr = m.engine.ClickAt(xFrac, yFrac)
	return m.afterDispatch()
}

// afterDispatch logs the outcome of a click and starts the frame loop when
// a transition is running.
func (m *Model) afterDispatch() tea.Cmd {
	if m.lastErr != nil {
		slog.Debug("Click had no effect", "state", m.engine.State().String(), "error", m.lastErr)
		return nil
	}
	if !m.engine.Busy() {
		m.refocus()
		return nil
	}
	return m.startFrames()
}

func (m *Model) startFrames() tea.Cmd {
	if m.ticking || !m.engine.Busy() {
		return nil
	}
	m.ticking = true
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	dt := m.config.frameInterval()
	return tea.Tick(dt, func(_ time.Time) tea.Msg {
		return frameMsg{dt: dt}
	})
}

// refocus keeps the focus on a clickable band of the top layer.
func (m *Model) refocus() {
	order := viewmodel.FocusOrder(m.engine.Scene())
	for _, ref := range order {
		if ref == m.focus {
			return
		}
	}
	m.focus = viewmodel.MoveFocus(order, viewmodel.BandRef{}, 1)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.legend.Resize(m.width)
	m.chart.Resize(m.width, m.chartHeight())
}
