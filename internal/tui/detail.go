package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/record"
)

// detailModel displays all fields of a saved number.
type detailModel struct {
	record     record.Record
	fields     []numberField
	cursor     int
	confirming bool
	flash      string
}

func newDetailModel(r record.Record) detailModel {
	fields := numberFields(r.Number)
	if r.Label != "" {
		fields = append(fields, numberField{"label", r.Label})
	}
	fields = append(fields,
		numberField{"id", r.ID},
		numberField{"saved", r.CreatedAt.Local().Format("2006-01-02 15:04")},
	)

	return detailModel{record: r, fields: fields}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if msg.String() == "y" {
				id := m.record.ID
				return m, func() tea.Msg { return deleteRecordMsg{id: id} }
			}
			return m, nil
		}
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if err := copyToClipboard(m.fields[m.cursor].value); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied!"
		return m, clearFlashAfter()
	}

	switch msg.String() {
	case "c":
		if err := copyToClipboard(allFieldsText(m.fields)); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied all!"
		return m, clearFlashAfter()

	case "d":
		m.confirming = true
		return m, nil
	}

	return m, nil
}

func (m detailModel) View() string {
	title := m.record.Value
	if m.record.Label != "" {
		title += "  " + m.record.Label
	}
	s := "\n  " + zstyle.Subtitle.Render(title) + "\n\n"

	for i, f := range m.fields {
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", f.label))
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + label + " " + f.value + "\n"
		} else {
			s += "    " + label + " " + f.value + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	switch {
	case m.confirming:
		s += "  " + zstyle.StatusWarn.Render("delete "+m.record.Value+"? y/n") + "\n"
	case m.flash != "":
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	default:
		s += "\n"
	}

	return s
}
