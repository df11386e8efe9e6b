package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zpnr/internal/pnr"
)

// numberField represents a labeled field for display and selection.
type numberField struct {
	label string
	value string
}

// generateModel displays a generated number with actions.
type generateModel struct {
	number pnr.Number
	fields []numberField
	cursor int
	saved  bool
	flash  string
}

// saveNumberMsg requests saving the current number.
type saveNumberMsg struct {
	number pnr.Number
}

// numberSavedMsg confirms the number was saved.
type numberSavedMsg struct{}

func newGenerateModel(n pnr.Number) generateModel {
	return generateModel{
		number: n,
		fields: numberFields(n),
	}
}

// numberFields lists the value first so enter copies it by default.
func numberFields(n pnr.Number) []numberField {
	fields := []numberField{
		{"number", n.Value},
		{"kind", string(n.Kind)},
	}

	switch n.Kind {
	case pnr.KindPersonnummer:
		fields = append(fields,
			numberField{"gender", genderName(n.Gender)},
			numberField{"born", n.BirthDate.Format(time.DateOnly)},
			numberField{"digits", digitsOnly(n.Value)},
		)
	case pnr.KindOrganisationsnummer:
		fields = append(fields,
			numberField{"type", n.CorporateType},
			numberField{"digits", digitsOnly(n.Value)},
		)
	}
	return fields
}

func genderName(g pnr.Gender) string {
	switch g {
	case pnr.Female:
		return "female"
	case pnr.Male:
		return "male"
	}
	return string(g)
}

func digitsOnly(s string) string {
	return strings.ReplaceAll(s, pnr.Separator, "")
}

func allFieldsText(fields []numberField) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, "%s: %s\n", f.label, f.value)
	}
	return b.String()
}

func (m generateModel) Init() tea.Cmd {
	return nil
}

func (m generateModel) Update(msg tea.Msg) (generateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case numberSavedMsg:
		m.saved = true
		m.flash = "saved"
		return m, clearFlashAfter()

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m generateModel) handleKey(msg tea.KeyMsg) (generateModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
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
	case "s":
		if m.saved {
			m.flash = "already saved"
			return m, clearFlashAfter()
		}
		n := m.number
		return m, func() tea.Msg { return saveNumberMsg{number: n} }

	case "c":
		if err := copyToClipboard(allFieldsText(m.fields)); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = "copied all!"
		return m, clearFlashAfter()

	case "n":
		return m, generate(m.number.Kind)
	}

	return m, nil
}

func (m generateModel) View() string {
	s := "\n  " + zstyle.Subtitle.Render("generated "+string(m.number.Kind)) + "\n\n"

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
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
