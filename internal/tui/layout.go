package tui

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

const (
	headerHeight = 2 // title and tabs
	statusHeight = 1
)

// resizeComponents resizes all components based on current window size
func (m *Model) resizeComponents() tea.Cmd {
	var cmds []tea.Cmd

	cmds = append(cmds, m.form.SetSize(m.formWidth(), m.bodyHeight()))
	cmds = append(cmds, m.detail.SetSize(m.detailWidth(), m.bodyHeight()))
	cmds = append(cmds, m.statusBar.SetSize(m.width, statusHeight))

	// Update dialog manager
	cmds = append(cmds, m.dialogManager.SetSize(m.width, m.height))

	return tea.Batch(cmds...)
}

// detailWidth calculates the width of the help pane; narrow terminals hide it.
func (m *Model) detailWidth() int {
	if m.width < 80 {
		return 0
	}
	if m.width < 120 {
		return 32
	}
	return 44
}

func (m *Model) formWidth() int {
	return max(m.width-m.detailWidth(), 0)
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-statusHeight, 1)
}
