package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/record"
)

// listModel displays saved numbers in a scrollable list.
type listModel struct {
	records    []record.Record
	cursor     int
	confirming bool
	flash      string
}

// deleteRecordMsg requests deletion of a saved number.
type deleteRecordMsg struct {
	id string
}

// viewRecordMsg requests viewing a specific saved number.
type viewRecordMsg struct {
	record record.Record
}

func newListModel(recs []record.Record) listModel {
	return listModel{records: recs}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			return m.handleConfirm(msg)
		}
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleConfirm(msg tea.KeyMsg) (listModel, tea.Cmd) {
	m.confirming = false
	if msg.String() != "y" {
		return m, nil
	}
	id := m.records[m.cursor].ID
	return m, func() tea.Msg { return deleteRecordMsg{id: id} }
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if len(m.records) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		r := m.records[m.cursor]
		return m, func() tea.Msg { return viewRecordMsg{record: r} }
	}

	if msg.String() == "d" {
		m.confirming = true
		return m, nil
	}

	return m, nil
}

func (m listModel) View() string {
	s := "\n"

	if len(m.records) == 0 {
		s += "  " + zstyle.MutedText.Render("no saved numbers") + "\n"
		s += "\n"
		if m.flash != "" {
			s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
		} else {
			s += "\n"
		}
		return s
	}

	for i, r := range m.records {
		line := fmt.Sprintf("%-14s %-20s %s", r.Value, r.Kind, truncate(r.Label, 24))

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.confirming:
		s += "  " + zstyle.StatusWarn.Render("delete "+m.records[m.cursor].Value+"? y/n") + "\n"
	case m.flash != "":
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	default:
		s += "\n"
	}

	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
