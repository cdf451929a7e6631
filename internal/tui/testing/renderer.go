// Package testing provides test utilities for TUI components.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer drives a Bubble Tea model without a terminal and keeps the
// last rendered view.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands holds commands returned by Update that have not been run
	Commands []tea.Cmd

	// Messages contains all messages sent to the model
	Messages []tea.Msg

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Render renders a model and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)
	r.UpdateCount++

	next, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = next.View()

	return next, cmd
}

// Send feeds messages to the model in order and returns the final model.
func (r *TestRenderer) Send(model tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		model, _ = r.Update(model, msg)
	}
	return model
}

// Drain runs pending commands, feeding their messages back into the model,
// until no commands remain or limit rounds have run. Batch messages are
// expanded. The final model is returned.
func (r *TestRenderer) Drain(model tea.Model, limit int) tea.Model {
	for round := 0; round < limit && len(r.Commands) > 0; round++ {
		cmds := r.Commands
		r.Commands = nil

		for _, cmd := range cmds {
			for _, msg := range collect(cmd) {
				model, _ = r.Update(model, msg)
			}
		}
	}
	return model
}

// LastCommand returns the most recent command, or nil if there is none.
func (r *TestRenderer) LastCommand() tea.Cmd {
	if len(r.Commands) == 0 {
		return nil
	}
	return r.Commands[len(r.Commands)-1]
}

// Reset clears captured state.
func (r *TestRenderer) Reset() {
	r.Output = ""
	r.Commands = nil
	r.Messages = nil
	r.UpdateCount = 0
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}
